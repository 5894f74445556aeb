// state реализует единственного владельца изменяемого снапшота
// и широковещательную рассылку неизменяемых снапшотов подписчикам.
//
// Правила:
//   - снапшот заменяется целиком (read-then-replace под одной блокировкой);
//   - подписчик всегда получает самый свежий снапшот, промежуточные могут быть пропущены;
//   - после Close любые обновления — no-op.
package state

import "sync"

// Store хранит текущий снапшот типа T.
// Значения T должны трактоваться как неизменяемые: слайсы внутри снапшота не правятся на месте.
type Store[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]chan T
	nextID int
	closed bool
}

// New создаёт Store с начальным снапшотом.
func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get возвращает текущий снапшот.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// Update атомарно заменяет снапшот результатом fn(текущий).
// Возвращает false, если Store закрыт: fn не вызывается.
func (s *Store[T]) Update(fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	s.value = fn(s.value)
	s.publish()

	return true
}

// Set заменяет снапшот значением v.
func (s *Store[T]) Set(v T) bool {
	return s.Update(func(T) T { return v })
}

// Subscribe возвращает канал снапшотов и функцию отписки.
// Первым в канал приходит текущий снапшот. Канал закрывается при отписке или Close.
func (s *Store[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan T, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.value

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}

	return ch, cancel
}

// Close закрывает Store: подписчики отпускаются, последующие обновления игнорируются.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// Closed сообщает, закрыт ли Store.
func (s *Store[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// publish кладёт текущий снапшот в каждый канал, вытесняя непрочитанный.
// Вызывается под s.mu.
func (s *Store[T]) publish() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.value
	}
}
