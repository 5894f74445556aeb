package feed

import "context"

// SetPremiumStatus применяет реальный статус подписки.
// Пока включён фейковый премиум, вызов игнорируется.
func (c *Container) SetPremiumStatus(premium bool) {
	c.store.Update(func(s FeedUIState) FeedUIState {
		if !s.IsFakePremiumEnabled {
			s.IsPremium = premium
		}
		return s
	})
}

// ToggleFakePremium включает фейковый премиум и сразу применяет его к IsPremium.
func (c *Container) ToggleFakePremium(enabled bool) {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsFakePremiumEnabled = enabled
		s.IsPremium = enabled
		return s
	})
}

func (c *Container) ToggleStories(enabled bool) {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.ShowStories = enabled
		return s
	})
}

func (c *Container) ToggleVideoAutoplay(enabled bool) {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsVideoAutoplayEnabled = enabled
		return s
	})
}

// ToggleMockInterface переключает мок-режим и сразу перезагружает ленту.
func (c *Container) ToggleMockInterface(ctx context.Context, enabled bool) error {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsMockInterfaceEnabled = enabled
		return s
	})

	return c.Fetch(ctx)
}

// SetSimulateError включает имитацию ошибки сервера в Fetch.
func (c *Container) SetSimulateError(enabled bool) {
	c.simulateError.Store(enabled)
}

// SetSimulateInfiniteLoading включает «вечную» загрузку в Fetch.
func (c *Container) SetSimulateInfiniteLoading(enabled bool) {
	c.simulateInfiniteLoading.Store(enabled)
}

// Simulation возвращает текущие флаги режима разработчика.
func (c *Container) Simulation() (simulateError, simulateInfiniteLoading bool) {
	return c.simulateError.Load(), c.simulateInfiniteLoading.Load()
}
