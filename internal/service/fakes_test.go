package service

import (
	"context"
	"sort"
	"time"

	"github.com/craftconf/bof-api/internal/domain"
	"github.com/craftconf/bof-api/internal/repository"
)

// memStore is an in-memory stand-in for the repository layer, shared
// by the service tests. It mirrors the persistence semantics the real
// DAOs provide: the vote upsert keyed by (participant, session), the
// cascade-clear on topic creation, and idempotent achievement awards.
type memStore struct {
	participants map[uint]domain.Participant
	sessions     map[uint]domain.BOFSession
	topics       map[uint]domain.Topic
	votes        map[uint]domain.Vote
	catalog      map[string]domain.Achievement
	earned       map[uint]map[uint]time.Time

	nextTopicID uint
	nextVoteID  uint
}

func newMemStore() *memStore {
	return &memStore{
		participants: make(map[uint]domain.Participant),
		sessions:     make(map[uint]domain.BOFSession),
		topics:       make(map[uint]domain.Topic),
		votes:        make(map[uint]domain.Vote),
		catalog:      make(map[string]domain.Achievement),
		earned:       make(map[uint]map[uint]time.Time),
	}
}

func (m *memStore) addParticipant(p domain.Participant) domain.Participant {
	m.participants[p.ID] = p
	return p
}

func (m *memStore) addSession(s domain.BOFSession) domain.BOFSession {
	m.sessions[s.ID] = s
	return s
}

func (m *memStore) addTopic(t domain.Topic) domain.Topic {
	if t.ID == 0 {
		m.nextTopicID++
		t.ID = m.nextTopicID
	} else if t.ID > m.nextTopicID {
		m.nextTopicID = t.ID
	}
	m.topics[t.ID] = t
	return t
}

func (m *memStore) addAchievement(a domain.Achievement) domain.Achievement {
	m.catalog[a.Code] = a
	return a
}

func (m *memStore) withAuthor(t domain.Topic) domain.TopicWithAuthor {
	return domain.TopicWithAuthor{Topic: t, Author: m.participants[t.ParticipantID]}
}

// --- participants ---

func (m *memStore) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	p, ok := m.participants[id]
	if !ok {
		return domain.Participant{}, repository.ErrParticipantNotFound
	}
	return p, nil
}

func (m *memStore) FindAll(ctx context.Context) ([]domain.Participant, error) {
	ids := make([]uint, 0, len(m.participants))
	for id := range m.participants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.Participant, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.participants[id])
	}
	return out, nil
}

// --- sessions ---

type sessionStore struct{ m *memStore }

func (s sessionStore) FindByID(ctx context.Context, id uint) (domain.BOFSession, error) {
	sess, ok := s.m.sessions[id]
	if !ok {
		return domain.BOFSession{}, repository.ErrSessionNotFound
	}
	return sess, nil
}

func (s sessionStore) FindAll(ctx context.Context) ([]domain.BOFSession, error) {
	out := make([]domain.BOFSession, 0, len(s.m.sessions))
	for _, sess := range s.m.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s sessionStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.m.sessions)), nil
}

// --- topics ---

type topicStore struct{ m *memStore }

func (t topicStore) Create(ctx context.Context, topic domain.Topic, clearAuthorVotes bool) (domain.Topic, error) {
	if clearAuthorVotes {
		for id, v := range t.m.votes {
			if v.ParticipantID == topic.ParticipantID && v.BOFSessionID == topic.BOFSessionID {
				delete(t.m.votes, id)
			}
		}
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now()
	}
	return t.m.addTopic(topic), nil
}

func (t topicStore) FindByID(ctx context.Context, id uint) (domain.TopicWithAuthor, error) {
	topic, ok := t.m.topics[id]
	if !ok {
		return domain.TopicWithAuthor{}, repository.ErrTopicNotFound
	}
	return t.m.withAuthor(topic), nil
}

func (t topicStore) FindByAuthorAndSession(ctx context.Context, participantID, sessionID uint) (domain.Topic, error) {
	for _, topic := range t.m.topics {
		if topic.ParticipantID == participantID && topic.BOFSessionID == sessionID {
			return topic, nil
		}
	}
	return domain.Topic{}, repository.ErrTopicNotFound
}

func (t topicStore) FindBySession(ctx context.Context, sessionID uint) ([]domain.TopicWithAuthor, error) {
	var out []domain.TopicWithAuthor
	for _, topic := range t.m.topics {
		if topic.BOFSessionID == sessionID {
			out = append(out, t.m.withAuthor(topic))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t topicStore) FindByAuthor(ctx context.Context, participantID uint) ([]domain.TopicWithAuthor, error) {
	var out []domain.TopicWithAuthor
	for _, topic := range t.m.topics {
		if topic.ParticipantID == participantID {
			out = append(out, t.m.withAuthor(topic))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t topicStore) Update(ctx context.Context, id uint, title, description string) (domain.Topic, error) {
	topic, ok := t.m.topics[id]
	if !ok {
		return domain.Topic{}, repository.ErrTopicNotFound
	}
	topic.Title = title
	topic.Description = description
	t.m.topics[id] = topic
	return topic, nil
}

func (t topicStore) SetHidden(ctx context.Context, id uint, hidden bool) error {
	topic, ok := t.m.topics[id]
	if !ok {
		return repository.ErrTopicNotFound
	}
	topic.IsHidden = hidden
	t.m.topics[id] = topic
	return nil
}

func (t topicStore) Delete(ctx context.Context, id uint) error {
	if _, ok := t.m.topics[id]; !ok {
		return repository.ErrTopicNotFound
	}
	for vid, v := range t.m.votes {
		if v.TopicID == id {
			delete(t.m.votes, vid)
		}
	}
	delete(t.m.topics, id)
	return nil
}

func (t topicStore) Move(ctx context.Context, id, targetSessionID uint) error {
	topic, ok := t.m.topics[id]
	if !ok {
		return repository.ErrTopicNotFound
	}
	topic.BOFSessionID = targetSessionID
	t.m.topics[id] = topic
	// A voter with an existing vote in the target session keeps it; the
	// colliding moved vote is dropped, as the DAO does.
	holders := map[uint]bool{}
	for _, v := range t.m.votes {
		if v.BOFSessionID == targetSessionID && v.TopicID != id {
			holders[v.ParticipantID] = true
		}
	}
	for vid, v := range t.m.votes {
		if v.TopicID != id {
			continue
		}
		if holders[v.ParticipantID] {
			delete(t.m.votes, vid)
			continue
		}
		v.BOFSessionID = targetSessionID
		t.m.votes[vid] = v
	}
	return nil
}

func (t topicStore) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	var n int64
	for _, topic := range t.m.topics {
		if topic.BOFSessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (t topicStore) CountVisibleByAuthor(ctx context.Context, participantID uint) (int64, error) {
	var n int64
	for _, topic := range t.m.topics {
		if topic.ParticipantID == participantID && !topic.IsHidden {
			n++
		}
	}
	return n, nil
}

// --- votes ---

type voteStore struct{ m *memStore }

func (v voteStore) Upsert(ctx context.Context, vote domain.Vote) (domain.Vote, error) {
	for id, existing := range v.m.votes {
		if existing.ParticipantID == vote.ParticipantID && existing.BOFSessionID == vote.BOFSessionID {
			existing.TopicID = vote.TopicID
			existing.UpdatedAt = time.Now()
			v.m.votes[id] = existing
			return existing, nil
		}
	}
	v.m.nextVoteID++
	vote.ID = v.m.nextVoteID
	vote.CreatedAt = time.Now()
	v.m.votes[vote.ID] = vote
	return vote, nil
}

func (v voteStore) FindByParticipantAndSession(ctx context.Context, participantID, sessionID uint) (domain.Vote, error) {
	for _, vote := range v.m.votes {
		if vote.ParticipantID == participantID && vote.BOFSessionID == sessionID {
			return vote, nil
		}
	}
	return domain.Vote{}, repository.ErrVoteNotFound
}

func (v voteStore) FindByParticipant(ctx context.Context, participantID uint) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, vote := range v.m.votes {
		if vote.ParticipantID == participantID {
			out = append(out, vote)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v voteStore) FindBySession(ctx context.Context, sessionID uint) ([]domain.VoteWithVoter, error) {
	var out []domain.VoteWithVoter
	for _, vote := range v.m.votes {
		if vote.BOFSessionID == sessionID {
			out = append(out, domain.VoteWithVoter{Vote: vote, Voter: v.m.participants[vote.ParticipantID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v voteStore) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	var n int64
	for _, vote := range v.m.votes {
		if vote.BOFSessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (v voteStore) CountByParticipant(ctx context.Context, participantID uint) (int64, error) {
	var n int64
	for _, vote := range v.m.votes {
		if vote.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

func (v voteStore) CountSessionsVoted(ctx context.Context, participantID uint) (int64, error) {
	seen := make(map[uint]bool)
	for _, vote := range v.m.votes {
		if vote.ParticipantID == participantID {
			seen[vote.BOFSessionID] = true
		}
	}
	return int64(len(seen)), nil
}

func (v voteStore) CountReceivedByAuthor(ctx context.Context, participantID uint) (int64, error) {
	var n int64
	for _, vote := range v.m.votes {
		if topic, ok := v.m.topics[vote.TopicID]; ok && topic.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

// --- achievements ---

type achievementStore struct{ m *memStore }

func (a achievementStore) FindAll(ctx context.Context) ([]domain.Achievement, error) {
	out := make([]domain.Achievement, 0, len(a.m.catalog))
	for _, ach := range a.m.catalog {
		out = append(out, ach)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a achievementStore) FindByCode(ctx context.Context, code string) (domain.Achievement, error) {
	ach, ok := a.m.catalog[code]
	if !ok {
		return domain.Achievement{}, repository.ErrAchievementNotFound
	}
	return ach, nil
}

func (a achievementStore) Award(ctx context.Context, participantID, achievementID uint) error {
	if a.m.earned[participantID] == nil {
		a.m.earned[participantID] = make(map[uint]time.Time)
	}
	if _, already := a.m.earned[participantID][achievementID]; already {
		return nil
	}
	a.m.earned[participantID][achievementID] = time.Now()
	return nil
}

func (a achievementStore) FindByParticipant(ctx context.Context, participantID uint) ([]domain.ParticipantAchievement, error) {
	var out []domain.ParticipantAchievement
	for achID, at := range a.m.earned[participantID] {
		var ach domain.Achievement
		for _, c := range a.m.catalog {
			if c.ID == achID {
				ach = c
				break
			}
		}
		out = append(out, domain.ParticipantAchievement{
			ParticipantID: participantID,
			AchievementID: achID,
			Achievement:   ach,
			EarnedAt:      at,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out, nil
}

// --- observers ---

type recordingNotifier struct {
	votesChanged       []uint
	topicsChanged      []uint
	leaderboardChanged int
}

func (n *recordingNotifier) VotesChanged(sessionID uint) {
	n.votesChanged = append(n.votesChanged, sessionID)
}

func (n *recordingNotifier) TopicsChanged(sessionID uint) {
	n.topicsChanged = append(n.topicsChanged, sessionID)
}

func (n *recordingNotifier) LeaderboardChanged() {
	n.leaderboardChanged++
}

type recordingAnalytics struct {
	events []domain.AnalyticsEvent
}

func (r *recordingAnalytics) Record(ctx context.Context, event domain.AnalyticsEvent) error {
	r.events = append(r.events, event)
	return nil
}
