package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/repository"
	"smartenglish_backend/internal/util"
)

// memStore 内存实现，满足 service 包的全部存储接口
type memStore struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]*model.User
	daily   map[uint]*model.DailyProgress
	weekly  map[uint]*model.WeeklyProgress
	monthly map[uint]*model.MonthlyProgress

	failXP  error
	xpCalls int
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[uint]*model.User{},
		daily:   map[uint]*model.DailyProgress{},
		weekly:  map[uint]*model.WeeklyProgress{},
		monthly: map[uint]*model.MonthlyProgress{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(name string, role model.UserRole) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{Name: name, Email: name + "@example.com", Role: role}
	u.ID = m.id()
	m.users[u.ID] = u
	return u
}

func (m *memStore) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return util.ErrEmailRegistered
		}
	}
	user.ID = m.id()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (m *memStore) UpdateLastLogin(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.LastLogin = time.Now()
	}
	return nil
}

func (m *memStore) ListStudents(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.User
	for _, u := range m.users {
		if u.Role == model.Student {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ApplyXP(ctx context.Context, p model.PendingXP) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.xpCalls++
	if m.failXP != nil {
		return false, m.failXP
	}

	var applied *bool
	switch p.Table {
	case "daily_progress":
		if r, ok := m.daily[p.RecordID]; ok {
			applied = &r.XPApplied
		}
	case "weekly_progress":
		if r, ok := m.weekly[p.RecordID]; ok {
			applied = &r.XPApplied
		}
	case "monthly_progress":
		if r, ok := m.monthly[p.RecordID]; ok {
			applied = &r.XPApplied
		}
	}
	if applied == nil || *applied {
		return false, nil
	}
	u, ok := m.users[p.UserID]
	if !ok {
		return false, util.ErrUserNotFound
	}
	*applied = true
	u.XP += p.Amount
	return true, nil
}

func (m *memStore) PendingXP(ctx context.Context, before time.Time, limit int) ([]model.PendingXP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PendingXP
	for _, r := range m.daily {
		if !r.XPApplied {
			out = append(out, model.PendingXP{Table: r.TableName(), RecordID: r.ID, UserID: r.UserID, Amount: r.XPAwarded})
		}
	}
	for _, r := range m.weekly {
		if !r.XPApplied {
			out = append(out, model.PendingXP{Table: r.TableName(), RecordID: r.ID, UserID: r.UserID, Amount: r.XPAwarded})
		}
	}
	for _, r := range m.monthly {
		if !r.XPApplied {
			out = append(out, model.PendingXP{Table: r.TableName(), RecordID: r.ID, UserID: r.UserID, Amount: r.XPAwarded})
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CreateDaily(ctx context.Context, p *model.DailyProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.daily {
		if r.UserID == p.UserID && r.Date == p.Date {
			return util.ErrAlreadySubmitted
		}
	}
	p.ID = m.id()
	cp := *p
	m.daily[p.ID] = &cp
	return nil
}

func (m *memStore) FindDailyByID(ctx context.Context, id uint) (*model.DailyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.daily[id]
	if !ok {
		return nil, util.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) FindDailyByDate(ctx context.Context, userID uint, date string) (*model.DailyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.daily {
		if r.UserID == userID && r.Date == date {
			cp := *r
			return &cp, nil
		}
	}
	return nil, util.ErrRecordNotFound
}

func (m *memStore) ListDaily(ctx context.Context, userID uint, f repository.DateFilter) ([]model.DailyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DailyProgress
	for _, r := range m.daily {
		if r.UserID != userID {
			continue
		}
		if f.From != "" && r.Date < f.From {
			continue
		}
		if f.To != "" && r.Date > f.To {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Desc {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memStore) UpdateDaily(ctx context.Context, p *model.DailyProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.daily[p.ID]
	if !ok {
		return util.ErrRecordNotFound
	}
	applied := r.XPApplied
	cp := *p
	cp.XPApplied = applied
	m.daily[p.ID] = &cp
	return nil
}

func (m *memStore) DeleteDaily(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.daily[id]; !ok {
		return util.ErrRecordNotFound
	}
	delete(m.daily, id)
	return nil
}

func (m *memStore) DailyBucketStats(ctx context.Context, userIDs []uint) ([]repository.DailyBucketStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	type key struct {
		user   uint
		bucket string
	}
	stats := map[key]*repository.DailyBucketStat{}
	for _, r := range m.daily {
		k := key{r.UserID, r.TimeSpent}
		st, ok := stats[k]
		if !ok {
			st = &repository.DailyBucketStat{UserID: r.UserID, TimeSpent: r.TimeSpent}
			stats[k] = st
		}
		st.Records++
		if r.Confidence != nil {
			st.ConfidenceSum += *r.Confidence
			st.ConfidenceCount++
		}
		if r.Date > st.LastDate {
			st.LastDate = r.Date
		}
	}
	var out []repository.DailyBucketStat
	for _, st := range stats {
		out = append(out, *st)
	}
	return out, nil
}

func (m *memStore) CreateWeekly(ctx context.Context, w *model.WeeklyProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.weekly {
		if r.UserID == w.UserID && r.WeekStart == w.WeekStart {
			return util.ErrAlreadySubmitted
		}
	}
	w.ID = m.id()
	cp := *w
	m.weekly[w.ID] = &cp
	return nil
}

func (m *memStore) ListWeekly(ctx context.Context, userID uint, f repository.DateFilter) ([]model.WeeklyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.WeeklyProgress
	for _, r := range m.weekly {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Desc {
			return out[i].WeekStart > out[j].WeekStart
		}
		return out[i].WeekStart < out[j].WeekStart
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memStore) DeleteWeekly(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.weekly[id]; !ok {
		return util.ErrRecordNotFound
	}
	delete(m.weekly, id)
	return nil
}

func (m *memStore) CreateMonthly(ctx context.Context, mp *model.MonthlyProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.monthly {
		if r.UserID == mp.UserID && r.Month == mp.Month {
			return util.ErrAlreadySubmitted
		}
	}
	mp.ID = m.id()
	cp := *mp
	m.monthly[mp.ID] = &cp
	return nil
}

func (m *memStore) ListMonthly(ctx context.Context, userID uint, f repository.DateFilter) ([]model.MonthlyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.MonthlyProgress
	for _, r := range m.monthly {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Desc {
			return out[i].Month > out[j].Month
		}
		return out[i].Month < out[j].Month
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memStore) DeleteMonthly(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.monthly[id]; !ok {
		return util.ErrRecordNotFound
	}
	delete(m.monthly, id)
	return nil
}

// recordingStore 与 memStore 的 Create/FindByID 方法签名冲突，单独实现
type recordingStore struct {
	mu   sync.Mutex
	recs map[string]*model.AudioRecording
	seq  int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{recs: map[string]*model.AudioRecording{}}
}

func (s *recordingStore) Create(ctx context.Context, rec *model.AudioRecording) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// 与 gorm 创建时一样走 BeforeCreate 生成 ID
	if err := rec.BeforeCreate(nil); err != nil {
		return err
	}
	s.seq++
	rec.CreatedAt = time.Unix(int64(s.seq), 0)
	cp := *rec
	s.recs[rec.ID] = &cp
	return nil
}

func (s *recordingStore) FindByID(ctx context.Context, id string) (*model.AudioRecording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recs[id]
	if !ok {
		return nil, util.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *recordingStore) ListByUser(ctx context.Context, userID uint) ([]model.AudioRecording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AudioRecording
	for _, r := range s.recs {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *recordingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, id)
	return nil
}

// fakeStorage 记录上传的对象，failKeys 中的对象签名失败
type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string]string
	failKeys map[string]bool
	deleted  []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]string{}, failKeys: map[string]bool{}}
}

func (f *fakeStorage) UploadFile(ctx context.Context, key string, localPath string, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = contentType
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) SignedURL(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKeys[key] {
		return "", errors.New("storage unavailable")
	}
	return fmt.Sprintf("https://files.example.com/%s?sig=test", key), nil
}

// countingCache 统计缓存失效次数
type countingCache struct {
	mu          sync.Mutex
	entries     map[string]*model.ProgressSummary
	invalidated map[uint]int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string]*model.ProgressSummary{}, invalidated: map[uint]int{}}
}

func (c *countingCache) key(userID uint, window string) string {
	return fmt.Sprintf("%d:%s", userID, window)
}

func (c *countingCache) Get(ctx context.Context, userID uint, window string) (*model.ProgressSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[c.key(userID, window)]
	return s, ok
}

func (c *countingCache) Set(ctx context.Context, userID uint, window string, s *model.ProgressSummary, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(userID, window)] = s
	return nil
}

func (c *countingCache) Invalidate(ctx context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated[userID]++
	for k := range c.entries {
		if strings.HasPrefix(k, fmt.Sprintf("%d:", userID)) {
			delete(c.entries, k)
		}
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
