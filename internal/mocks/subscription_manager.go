package mocks

import (
	"sync"
	"time"

	"github.com/VitaminP8/linkery/graph/model"
)

type MockSubscriptionManager struct {
	mu             sync.Mutex
	linkSubs       []chan *model.Link
	voteSubs       []chan *model.Vote
	publishedLinks []*model.Link // Для отслеживания в тестах
	publishedVotes []*model.Vote
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{}
}

func (m *MockSubscriptionManager) SubscribeLinks() (<-chan *model.Link, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Link, 1)
	m.linkSubs = append(m.linkSubs, ch)

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.linkSubs {
			if sub == ch {
				m.linkSubs = append(m.linkSubs[:i], m.linkSubs[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

func (m *MockSubscriptionManager) SubscribeVotes() (<-chan *model.Vote, func()) {
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

func (m *MockSubscriptionManager) PublishLink(link *model.Link) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.linkSubs {
		select {
		case sub <- link:
		case <-time.After(500 * time.Millisecond):
		}
	}

	// Сохраняем событие для тестирования
	m.publishedLinks = append(m.publishedLinks, link)
}

func (m *MockSubscriptionManager) PublishVote(vote *model.Vote) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.voteSubs {
		select {
		case sub <- vote:
		case <-time.After(500 * time.Millisecond):
		}
	}

	m.publishedVotes = append(m.publishedVotes, vote)
}

// PublishedLinks - вспомогательный метод для тестирования,
// возвращает все опубликованные события newLink
func (m *MockSubscriptionManager) PublishedLinks() []*model.Link {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.publishedLinks
}

// PublishedVotes возвращает все опубликованные события newVote
func (m *MockSubscriptionManager) PublishedVotes() []*model.Vote {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.publishedVotes
}
