package service

// Notifier pushes invalidation signals to realtime subscribers after a
// successful mutation. Implementations must not block.
type Notifier interface {
	VotesChanged(sessionID uint)
	TopicsChanged(sessionID uint)
	LeaderboardChanged()
}

// NopNotifier is used where no realtime fan-out is wired, e.g. tests.
type NopNotifier struct{}

func (NopNotifier) VotesChanged(uint)  {}
func (NopNotifier) TopicsChanged(uint) {}
func (NopNotifier) LeaderboardChanged() {}
