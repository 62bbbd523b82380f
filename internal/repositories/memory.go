package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/models"
)

type watchEntry struct {
	videoID string
	at      time.Time
}

// memoryDB holds every collection of the in-memory backend behind one lock.
type memoryDB struct {
	mu            sync.RWMutex
	users         map[string]models.User
	history       map[string][]watchEntry
	videos        map[string]models.Video
	comments      map[string]models.Comment
	tweets        map[string]models.Tweet
	likes         map[string]models.Like
	subscriptions map[string]models.Subscription
	playlists     map[string]models.Playlist
}

// NewMemoryStore returns a Store that keeps everything in process memory.
// It is used by tests and by VIDTUBE_STORE=memory for local runs.
func NewMemoryStore() Store {
	db := &memoryDB{
		users:         make(map[string]models.User),
		history:       make(map[string][]watchEntry),
		videos:        make(map[string]models.Video),
		comments:      make(map[string]models.Comment),
		tweets:        make(map[string]models.Tweet),
		likes:         make(map[string]models.Like),
		subscriptions: make(map[string]models.Subscription),
		playlists:     make(map[string]models.Playlist),
	}
	return Store{
		Users:         &memoryUsers{db: db},
		Sessions:      auth.NewInMemorySessionStore(),
		Videos:        &memoryVideos{db: db},
		Dashboard:     &memoryDashboard{db: db},
		Comments:      &memoryComments{db: db},
		Tweets:        &memoryTweets{db: db},
		Likes:         &memoryLikes{db: db},
		Subscriptions: &memorySubscriptions{db: db},
		Playlists:     &memoryPlaylists{db: db},
	}
}

func (db *memoryDB) ownerSummary(id string) models.OwnerSummary {
	if u, ok := db.users[id]; ok {
		return u.Summary()
	}
	return models.OwnerSummary{ID: id}
}

type memoryUsers struct{ db *memoryDB }

func (r *memoryUsers) Create(_ context.Context, user models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.ID == user.ID || existing.Username == user.Username || existing.Email == user.Email {
			return ErrConflict
		}
	}
	r.db.users[user.ID] = user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	user, ok := r.db.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryUsers) FindByLogin(_ context.Context, username, email string) (models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, user := range r.db.users {
		if (username != "" && user.Username == username) || (email != "" && user.Email == email) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *memoryUsers) RecordWatch(_ context.Context, userID, videoID string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[userID]; !ok {
		return ErrNotFound
	}
	entries := []watchEntry{{videoID: videoID, at: at}}
	for _, e := range r.db.history[userID] {
		if e.videoID != videoID {
			entries = append(entries, e)
		}
	}
	if len(entries) > watchHistoryLimit {
		entries = entries[:watchHistoryLimit]
	}
	r.db.history[userID] = entries
	return nil
}

func (r *memoryUsers) WatchHistory(_ context.Context, userID string) ([]models.WatchedVideo, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	watched := []models.WatchedVideo{}
	for _, e := range r.db.history[userID] {
		v, ok := r.db.videos[e.videoID]
		if !ok {
			continue
		}
		watched = append(watched, models.WatchedVideo{
			VideoDetails: models.VideoDetails{Video: v, OwnerDetails: r.db.ownerSummary(v.Owner)},
			WatchedAt:    e.at,
		})
	}
	return watched, nil
}

type memoryVideos struct{ db *memoryDB }

func (r *memoryVideos) Create(_ context.Context, video models.Video) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.videos[video.ID]; ok {
		return ErrConflict
	}
	if _, ok := r.db.users[video.Owner]; !ok {
		return ErrNotFound
	}
	r.db.videos[video.ID] = video
	return nil
}

func (r *memoryVideos) FindByID(_ context.Context, id string) (models.Video, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	v, ok := r.db.videos[id]
	if !ok {
		return models.Video{}, ErrNotFound
	}
	return v, nil
}

func (r *memoryVideos) FindDetails(_ context.Context, id string) (models.VideoDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	v, ok := r.db.videos[id]
	if !ok {
		return models.VideoDetails{}, ErrNotFound
	}
	return models.VideoDetails{Video: v, OwnerDetails: r.db.ownerSummary(v.Owner)}, nil
}

func (r *memoryVideos) Update(_ context.Context, video models.Video) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.videos[video.ID]
	if !ok {
		return ErrNotFound
	}
	current.Title = video.Title
	current.Description = video.Description
	current.Thumbnail = video.Thumbnail
	current.IsPublished = video.IsPublished
	current.UpdatedAt = video.UpdatedAt
	r.db.videos[video.ID] = current
	return nil
}

func (r *memoryVideos) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.videos[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.videos, id)
	for cid, c := range r.db.comments {
		if c.VideoID == id {
			delete(r.db.comments, cid)
			for lid, l := range r.db.likes {
				if l.CommentID == cid {
					delete(r.db.likes, lid)
				}
			}
		}
	}
	for lid, l := range r.db.likes {
		if l.VideoID == id {
			delete(r.db.likes, lid)
		}
	}
	for pid, p := range r.db.playlists {
		p.Videos = without(p.Videos, id)
		r.db.playlists[pid] = p
	}
	return nil
}

func (r *memoryVideos) IncrementViews(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[id]
	if !ok {
		return ErrNotFound
	}
	v.Views++
	r.db.videos[id] = v
	return nil
}

func (r *memoryVideos) matching(q models.ListQuery) []models.Video {
	needle := strings.ToLower(q.TextQuery)
	var out []models.Video
	for _, v := range r.db.videos {
		if q.OwnerID != "" && v.Owner != q.OwnerID {
			continue
		}
		if q.PublishedOnly && !v.IsPublished {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(v.Title), needle) && !strings.Contains(strings.ToLower(v.Description), needle) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (r *memoryVideos) List(_ context.Context, q models.ListQuery) ([]models.VideoDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	videos := r.matching(q)
	sortVideos(videos, q.SortField, q.SortDirection)
	videos = pageOf(videos, q)
	out := make([]models.VideoDetails, 0, len(videos))
	for _, v := range videos {
		out = append(out, models.VideoDetails{Video: v, OwnerDetails: r.db.ownerSummary(v.Owner)})
	}
	return out, nil
}

func (r *memoryVideos) Count(_ context.Context, q models.ListQuery) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.matching(q))), nil
}

func (r *memoryVideos) ListByOwner(_ context.Context, ownerID string) ([]models.ChannelVideo, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	videos := r.matching(models.ListQuery{OwnerID: ownerID})
	sortVideos(videos, models.SortCreatedAt, models.SortDescending)
	out := make([]models.ChannelVideo, 0, len(videos))
	for _, v := range videos {
		out = append(out, models.ChannelVideo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			IsPublished: v.IsPublished,
			CreatedAt:   v.CreatedAt,
		})
	}
	return out, nil
}

type memoryDashboard struct{ db *memoryDB }

func (r *memoryDashboard) ChannelStats(_ context.Context, ownerID string) (models.ChannelStats, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var stats models.ChannelStats
	owned := make(map[string]struct{})
	for _, v := range r.db.videos {
		if v.Owner != ownerID {
			continue
		}
		owned[v.ID] = struct{}{}
		stats.TotalVideos++
		stats.TotalViews += v.Views
	}
	for _, l := range r.db.likes {
		if _, ok := owned[l.VideoID]; ok && l.VideoID != "" {
			stats.TotalVideoLikes++
		}
	}
	for _, s := range r.db.subscriptions {
		if s.ChannelID == ownerID {
			stats.TotalSubscribers++
		}
	}
	return stats, nil
}

type memoryComments struct{ db *memoryDB }

func (r *memoryComments) Create(_ context.Context, comment models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[comment.ID]; ok {
		return ErrConflict
	}
	if _, ok := r.db.videos[comment.VideoID]; !ok {
		return ErrNotFound
	}
	r.db.comments[comment.ID] = comment
	return nil
}

func (r *memoryComments) FindByID(_ context.Context, id string) (models.Comment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.comments[id]
	if !ok {
		return models.Comment{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryComments) FindDetails(_ context.Context, id string) (models.CommentDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.comments[id]
	if !ok {
		return models.CommentDetails{}, ErrNotFound
	}
	return models.CommentDetails{Comment: c, OwnerDetails: r.db.ownerSummary(c.Owner)}, nil
}

func (r *memoryComments) Update(_ context.Context, comment models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.comments[comment.ID]
	if !ok {
		return ErrNotFound
	}
	current.Content = comment.Content
	current.UpdatedAt = comment.UpdatedAt
	r.db.comments[comment.ID] = current
	return nil
}

func (r *memoryComments) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.comments, id)
	for lid, l := range r.db.likes {
		if l.CommentID == id {
			delete(r.db.likes, lid)
		}
	}
	return nil
}

func (r *memoryComments) matching(q models.ListQuery) []models.Comment {
	var out []models.Comment
	for _, c := range r.db.comments {
		if q.VideoID != "" && c.VideoID != q.VideoID {
			continue
		}
		out = append(out, c)
	}
	sortByTime(out, q, func(c models.Comment) (time.Time, time.Time, string) { return c.CreatedAt, c.UpdatedAt, c.ID })
	return out
}

func (r *memoryComments) List(_ context.Context, q models.ListQuery) ([]models.CommentDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	comments := pageOf(r.matching(q), q)
	out := make([]models.CommentDetails, 0, len(comments))
	for _, c := range comments {
		out = append(out, models.CommentDetails{Comment: c, OwnerDetails: r.db.ownerSummary(c.Owner)})
	}
	return out, nil
}

func (r *memoryComments) Count(_ context.Context, q models.ListQuery) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.matching(q))), nil
}

type memoryTweets struct{ db *memoryDB }

func (r *memoryTweets) Create(_ context.Context, tweet models.Tweet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tweets[tweet.ID]; ok {
		return ErrConflict
	}
	r.db.tweets[tweet.ID] = tweet
	return nil
}

func (r *memoryTweets) FindByID(_ context.Context, id string) (models.Tweet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	t, ok := r.db.tweets[id]
	if !ok {
		return models.Tweet{}, ErrNotFound
	}
	return t, nil
}

func (r *memoryTweets) Update(_ context.Context, tweet models.Tweet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.tweets[tweet.ID]
	if !ok {
		return ErrNotFound
	}
	current.Content = tweet.Content
	current.UpdatedAt = tweet.UpdatedAt
	r.db.tweets[tweet.ID] = current
	return nil
}

func (r *memoryTweets) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tweets[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.tweets, id)
	for lid, l := range r.db.likes {
		if l.TweetID == id {
			delete(r.db.likes, lid)
		}
	}
	return nil
}

func (r *memoryTweets) matching(q models.ListQuery) []models.Tweet {
	var out []models.Tweet
	for _, t := range r.db.tweets {
		if q.OwnerID != "" && t.Owner != q.OwnerID {
			continue
		}
		out = append(out, t)
	}
	sortByTime(out, q, func(t models.Tweet) (time.Time, time.Time, string) { return t.CreatedAt, t.UpdatedAt, t.ID })
	return out
}

func (r *memoryTweets) List(_ context.Context, q models.ListQuery) ([]models.Tweet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	tweets := pageOf(r.matching(q), q)
	return append([]models.Tweet{}, tweets...), nil
}

func (r *memoryTweets) Count(_ context.Context, q models.ListQuery) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.matching(q))), nil
}

type memoryLikes struct{ db *memoryDB }

func (r *memoryLikes) Remove(_ context.Context, target models.Target, actorID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, l := range r.db.likes {
		if l.LikedBy == actorID && l.Target() == target {
			delete(r.db.likes, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryLikes) Add(_ context.Context, like models.Like) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	target := like.Target()
	for _, l := range r.db.likes {
		if l.LikedBy == like.LikedBy && l.Target() == target {
			return ErrConflict
		}
	}
	r.db.likes[like.ID] = like
	return nil
}

func (r *memoryLikes) Count(_ context.Context, target models.Target) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var n int64
	for _, l := range r.db.likes {
		if l.Target() == target {
			n++
		}
	}
	return n, nil
}

func (r *memoryLikes) LikedVideos(_ context.Context, actorID string) ([]models.LikedVideo, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []models.LikedVideo{}
	for _, l := range r.db.likes {
		if l.LikedBy != actorID || l.VideoID == "" {
			continue
		}
		v, ok := r.db.videos[l.VideoID]
		if !ok || (!v.IsPublished && v.Owner != actorID) {
			continue
		}
		out = append(out, models.LikedVideo{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			VideoFile:    v.VideoFile,
			Thumbnail:    v.Thumbnail,
			Duration:     v.Duration,
			CreatedAt:    v.CreatedAt,
			LikedAt:      l.CreatedAt,
			OwnerDetails: r.db.ownerSummary(v.Owner),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LikedAt.After(out[j].LikedAt) })
	return out, nil
}

type memorySubscriptions struct{ db *memoryDB }

func (r *memorySubscriptions) Remove(_ context.Context, channelID, subscriberID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, s := range r.db.subscriptions {
		if s.ChannelID == channelID && s.SubscriberID == subscriberID {
			delete(r.db.subscriptions, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *memorySubscriptions) Add(_ context.Context, sub models.Subscription) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.subscriptions {
		if s.ChannelID == sub.ChannelID && s.SubscriberID == sub.SubscriberID {
			return ErrConflict
		}
	}
	r.db.subscriptions[sub.ID] = sub
	return nil
}

func (r *memorySubscriptions) CountSubscribers(_ context.Context, channelID string) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var n int64
	for _, s := range r.db.subscriptions {
		if s.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (r *memorySubscriptions) members(match func(models.Subscription) (string, bool)) []models.ChannelMember {
	out := []models.ChannelMember{}
	for _, s := range r.db.subscriptions {
		if id, ok := match(s); ok {
			out = append(out, models.ChannelMember{OwnerSummary: r.db.ownerSummary(id), SubscribedAt: s.CreatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubscribedAt.After(out[j].SubscribedAt) })
	return out
}

func (r *memorySubscriptions) Subscribers(_ context.Context, channelID string) ([]models.ChannelMember, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.members(func(s models.Subscription) (string, bool) {
		return s.SubscriberID, s.ChannelID == channelID
	}), nil
}

func (r *memorySubscriptions) SubscribedChannels(_ context.Context, subscriberID string) ([]models.ChannelMember, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.members(func(s models.Subscription) (string, bool) {
		return s.ChannelID, s.SubscriberID == subscriberID
	}), nil
}

type memoryPlaylists struct{ db *memoryDB }

func (r *memoryPlaylists) Create(_ context.Context, playlist models.Playlist) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.playlists[playlist.ID]; ok {
		return ErrConflict
	}
	if playlist.Videos == nil {
		playlist.Videos = []string{}
	}
	r.db.playlists[playlist.ID] = playlist
	return nil
}

func (r *memoryPlaylists) FindByID(_ context.Context, id string) (models.Playlist, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.playlists[id]
	if !ok {
		return models.Playlist{}, ErrNotFound
	}
	p.Videos = append([]string{}, p.Videos...)
	return p, nil
}

func (r *memoryPlaylists) Update(_ context.Context, playlist models.Playlist) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.playlists[playlist.ID]
	if !ok {
		return ErrNotFound
	}
	current.Name = playlist.Name
	current.Description = playlist.Description
	current.UpdatedAt = playlist.UpdatedAt
	r.db.playlists[playlist.ID] = current
	return nil
}

func (r *memoryPlaylists) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.playlists[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.playlists, id)
	return nil
}

func (r *memoryPlaylists) AddVideo(_ context.Context, playlistID, videoID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.playlists[playlistID]
	if !ok {
		return ErrNotFound
	}
	for _, id := range p.Videos {
		if id == videoID {
			return ErrConflict
		}
	}
	p.Videos = append(append([]string{}, p.Videos...), videoID)
	r.db.playlists[playlistID] = p
	return nil
}

func (r *memoryPlaylists) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.playlists[playlistID]
	if !ok {
		return ErrNotFound
	}
	remaining := without(p.Videos, videoID)
	if len(remaining) == len(p.Videos) {
		return ErrNotFound
	}
	p.Videos = remaining
	r.db.playlists[playlistID] = p
	return nil
}

func (r *memoryPlaylists) ListByOwner(_ context.Context, ownerID string) ([]models.PlaylistDetails, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []models.PlaylistDetails{}
	for _, p := range r.db.playlists {
		if p.Owner != ownerID {
			continue
		}
		p.Videos = append([]string{}, p.Videos...)
		out = append(out, models.PlaylistDetails{Playlist: p, TotalVideos: len(p.Videos), OwnerDetails: r.db.ownerSummary(p.Owner)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryPlaylists) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var n int64
	for _, p := range r.db.playlists {
		if p.Owner == ownerID {
			n++
		}
	}
	return n, nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func pageOf[T any](items []T, q models.ListQuery) []T {
	if q.Limit <= 0 {
		return items
	}
	start := q.Skip()
	if start >= len(items) {
		return nil
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func sortVideos(videos []models.Video, field string, dir models.SortDirection) {
	less := func(a, b models.Video) int {
		switch field {
		case models.SortTitle:
			return strings.Compare(a.Title, b.Title)
		case models.SortViews:
			return compareInt(a.Views, b.Views)
		case models.SortDuration:
			return compareInt(a.Duration, b.Duration)
		case models.SortUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(videos, func(i, j int) bool {
		c := less(videos[i], videos[j])
		if c == 0 {
			c = strings.Compare(videos[i].ID, videos[j].ID)
		}
		if dir == models.SortAscending {
			return c < 0
		}
		return c > 0
	})
}

func sortByTime[T any](items []T, q models.ListQuery, key func(T) (time.Time, time.Time, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, ui, idi := key(items[i])
		cj, uj, idj := key(items[j])
		a, b := ci, cj
		if q.SortField == models.SortUpdatedAt {
			a, b = ui, uj
		}
		c := a.Compare(b)
		if c == 0 {
			c = strings.Compare(idi, idj)
		}
		if q.SortDirection == models.SortAscending {
			return c < 0
		}
		return c > 0
	})
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var (
	_ UserRepository         = (*memoryUsers)(nil)
	_ VideoRepository        = (*memoryVideos)(nil)
	_ DashboardRepository    = (*memoryDashboard)(nil)
	_ CommentRepository      = (*memoryComments)(nil)
	_ TweetRepository        = (*memoryTweets)(nil)
	_ LikeRepository         = (*memoryLikes)(nil)
	_ SubscriptionRepository = (*memorySubscriptions)(nil)
	_ PlaylistRepository     = (*memoryPlaylists)(nil)
)
