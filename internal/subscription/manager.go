package subscription

import (
	"sync"
	"time"

	"github.com/VitaminP8/linkery/graph/model"
)

type SubscriptionManager struct {
	mu       sync.Mutex
	linkSubs []chan *model.Link // подписчики newLink
	voteSubs []chan *model.Vote // подписчики newVote
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{}
}

func (m *SubscriptionManager) SubscribeLinks() (<-chan *model.Link, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Link, 1) // Буфер 1, чтобы не блокировался писатель

	m.linkSubs = append(m.linkSubs, ch)

	// функция для отписки
	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.linkSubs {
			if sub == ch {
				// Удаляем подписчика
				m.linkSubs = append(m.linkSubs[:i], m.linkSubs[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

func (m *SubscriptionManager) SubscribeVotes() (<-chan *model.Vote, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Vote, 1)

	m.voteSubs = append(m.voteSubs, ch)

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.voteSubs {
			if sub == ch {
				m.voteSubs = append(m.voteSubs[:i], m.voteSubs[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

// PublishLink доставляет ссылку всем подписчикам, зарегистрированным на момент публикации.
// Подписчики, появившиеся позже, это событие не получат
func (m *SubscriptionManager) PublishLink(link *model.Link) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.linkSubs {
		// Каждому подписчику отправляется своя копия - последующие изменения ссылки не затронут уже доставленное событие
		payload := *link
		select {
		case sub <- &payload:
		case <-time.After(500 * time.Millisecond):
			// Если канал заполнен, ждем короткое время
		}
	}
}

func (m *SubscriptionManager) PublishVote(vote *model.Vote) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.voteSubs {
		payload := *vote
		select {
		case sub <- &payload:
		case <-time.After(500 * time.Millisecond):
		}
	}
}
