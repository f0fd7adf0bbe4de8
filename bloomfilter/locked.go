package bloomfilter

import "sync"

// Locked guards a Filter with a RWMutex: Add and Clear take the write lock,
// everything else the read lock.
type Locked[E any] struct {
	mu sync.RWMutex
	f  *Filter[E]
}

func NewLocked[E any](f *Filter[E]) *Locked[E] {
	return &Locked[E]{f: f}
}

func (l *Locked[E]) Add(e E) error {
	data, err := l.f.encode(e)
	if err != nil {
		return err
	}
	l.AddBytes(data)
	return nil
}

func (l *Locked[E]) AddBytes(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.f.AddBytes(data)
}

func (l *Locked[E]) Contains(e E) (bool, error) {
	data, err := l.f.encode(e)
	if err != nil {
		return false, err
	}
	return l.ContainsBytes(data), nil
}

func (l *Locked[E]) ContainsBytes(data []byte) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.ContainsBytes(data)
}

func (l *Locked[E]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.f.Clear()
}

func (l *Locked[E]) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Count()
}

func (l *Locked[E]) FillRatio() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.FillRatio()
}

func (l *Locked[E]) CurrentFalsePositiveProbability() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.CurrentFalsePositiveProbability()
}

func (l *Locked[E]) CurrentBitsPerElement() (float64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.CurrentBitsPerElement()
}

// Unwrap returns the underlying filter; its immutable accessors (Size,
// HashRounds, the expected estimates) need no lock.
func (l *Locked[E]) Unwrap() *Filter[E] {
	return l.f
}
