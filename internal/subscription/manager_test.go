package subscription

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionManager_SubscribeLinks(t *testing.T) {
	t.Run("Should create a subscription channel", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.SubscribeLinks()
		assert.NotNil(t, ch)
		assert.NotNil(t, cancel)

		manager.mu.Lock()
		assert.Len(t, manager.linkSubs, 1)
		manager.mu.Unlock()

		// Вызываем отмену подписки
		cancel()

		manager.mu.Lock()
		assert.Len(t, manager.linkSubs, 0)
		manager.mu.Unlock()
	})

	t.Run("Cancel closes the channel", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.SubscribeLinks()
		cancel()

		_, open := <-ch
		assert.False(t, open)
	})

	t.Run("Multiple link subscriptions", func(t *testing.T) {
		manager := NewSubscriptionManager()

		// Создаем 3 подписки
		_, cancel1 := manager.SubscribeLinks()
		_, cancel2 := manager.SubscribeLinks()
		_, cancel3 := manager.SubscribeLinks()

		manager.mu.Lock()
		assert.Len(t, manager.linkSubs, 3)
		manager.mu.Unlock()

		// Отменяем вторую подписку
		cancel2()

		manager.mu.Lock()
		assert.Len(t, manager.linkSubs, 2)
		manager.mu.Unlock()

		cancel1()
		cancel3()

		manager.mu.Lock()
		assert.Len(t, manager.linkSubs, 0)
		manager.mu.Unlock()
	})

	t.Run("Link and vote subscriptions are independent", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancelLink := manager.SubscribeLinks()
		_, cancelVote := manager.SubscribeVotes()

		manager.mu.Lock()
		assert.Len(t, manager.linkSubs, 1)
		assert.Len(t, manager.voteSubs, 1)
		manager.mu.Unlock()

		cancelLink()

		manager.mu.Lock()
		assert.Len(t, manager.linkSubs, 0)
		assert.Len(t, manager.voteSubs, 1)
		manager.mu.Unlock()

		cancelVote()
	})
}

func TestSubscriptionManager_PublishLink(t *testing.T) {
	t.Run("Should send link to subscribers", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.SubscribeLinks()
		defer cancel()

		link := &model.Link{
			ID:          "456",
			CreatedAt:   time.Now().Format(time.RFC3339),
			Description: "Test link",
			URL:         "https://example.com",
		}

		// Публикуем ссылку
		manager.PublishLink(link)

		// Проверяем, что ссылка получена
		select {
		case receivedLink := <-ch:
			assert.Equal(t, link.ID, receivedLink.ID)
			assert.Equal(t, link.URL, receivedLink.URL)
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for link")
		}
	})

	t.Run("All current subscribers receive the event", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.SubscribeLinks()
		defer cancel1()
		ch2, cancel2 := manager.SubscribeLinks()
		defer cancel2()

		link := &model.Link{ID: "1", URL: "https://example.com", Description: "x"}
		manager.PublishLink(link)

		for _, ch := range []<-chan *model.Link{ch1, ch2} {
			select {
			case received := <-ch:
				assert.Equal(t, link.ID, received.ID)
			case <-time.After(time.Second):
				t.Fatal("Timeout waiting for link")
			}
		}
	})

	t.Run("Delivered event is a copy of the payload", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.SubscribeLinks()
		defer cancel()

		link := &model.Link{ID: "1", URL: "https://example.com", Description: "before"}
		manager.PublishLink(link)

		// Изменяем оригинал уже после публикации - доставленное событие не должно измениться
		link.Description = "after"

		select {
		case received := <-ch:
			assert.Equal(t, "before", received.Description)
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for link")
		}
	})

	t.Run("Subscriber registered after publish receives nothing", func(t *testing.T) {
		manager := NewSubscriptionManager()

		manager.PublishLink(&model.Link{ID: "1", URL: "https://example.com"})

		// Подписка после публикации - событие не доставляется задним числом
		ch, cancel := manager.SubscribeLinks()
		defer cancel()

		select {
		case link := <-ch:
			t.Fatalf("unexpected link received: %v", link)
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestSubscriptionManager_PublishVote(t *testing.T) {
	t.Run("Should send vote to subscribers", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.SubscribeVotes()
		defer cancel()

		vote := &model.Vote{
			ID:     "1",
			LinkID: "2",
			UserID: "3",
		}

		manager.PublishVote(vote)

		select {
		case receivedVote := <-ch:
			assert.Equal(t, vote.ID, receivedVote.ID)
			assert.Equal(t, vote.LinkID, receivedVote.LinkID)
			assert.Equal(t, vote.UserID, receivedVote.UserID)
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for vote")
		}
	})

	t.Run("Vote is not delivered to link subscribers", func(t *testing.T) {
		manager := NewSubscriptionManager()

		linkCh, cancel := manager.SubscribeLinks()
		defer cancel()

		manager.PublishVote(&model.Vote{ID: "1", LinkID: "2", UserID: "3"})

		select {
		case link := <-linkCh:
			t.Fatalf("unexpected link received: %v", link)
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestSubscriptionManager_ConcurrentAccess(t *testing.T) {
	manager := NewSubscriptionManager()

	var wg sync.WaitGroup

	// Параллельные подписки/отписки и публикации не должны приводить к гонкам
	for i := 0; i < 20; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			ch, cancel := manager.SubscribeLinks()
			go func() {
				for range ch {
				}
			}()
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		go func(n int) {
			defer wg.Done()
			manager.PublishLink(&model.Link{
				ID:  strconv.Itoa(n),
				URL: "https://example.com/" + strconv.Itoa(n),
			})
		}(i)
	}

	wg.Wait()

	manager.mu.Lock()
	remaining := len(manager.linkSubs)
	manager.mu.Unlock()
	require.Equal(t, 0, remaining)
}
