package story

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/hume"
	"lull/internal/service"
)

// In-memory fakes for the mongo repos, providers and storage. The story
// fake reproduces the conditional status transition faithfully, including
// its single-winner behavior under concurrency.

type fakeStoryRepo struct {
	mu        sync.Mutex
	stories   map[string]*storyModel.Story
	createErr error
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: make(map[string]*storyModel.Story)}
}

func (r *fakeStoryRepo) Create(ctx context.Context, s *storyModel.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.AudioStatus == "" {
		s.AudioStatus = storyModel.AudioStatusPending
	}
	cp := *s
	r.stories[s.ID] = &cp
	return nil
}

func (r *fakeStoryRepo) FindByID(ctx context.Context, id string) (*storyModel.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoryRepo) FindByUserID(ctx context.Context, userID string) ([]*storyModel.Story, error) {
	return r.filter(func(s *storyModel.Story) bool { return s.UserID == userID }), nil
}

func (r *fakeStoryRepo) FindFavoritesByUserID(ctx context.Context, userID string) ([]*storyModel.Story, error) {
	return r.filter(func(s *storyModel.Story) bool { return s.UserID == userID && s.IsFavorite }), nil
}

func (r *fakeStoryRepo) FindByChildID(ctx context.Context, userID, childID string) ([]*storyModel.Story, error) {
	return r.filter(func(s *storyModel.Story) bool { return s.UserID == userID && s.ChildID == childID }), nil
}

func (r *fakeStoryRepo) FindTitlesByUserID(ctx context.Context, userID string) ([]string, error) {
	var titles []string
	for _, s := range r.filter(func(s *storyModel.Story) bool { return s.UserID == userID }) {
		titles = append(titles, s.Title)
	}
	return titles, nil
}

func (r *fakeStoryRepo) filter(keep func(*storyModel.Story) bool) []*storyModel.Story {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*storyModel.Story
	for _, s := range r.stories {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakeStoryRepo) TransitionAudioStatus(ctx context.Context, id string, from []storyModel.AudioStatus, to storyModel.AudioStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if s.AudioStatus == f {
			s.AudioStatus = to
			s.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStoryRepo) UpdateAudioReady(ctx context.Context, id, audioKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stories[id]; ok {
		s.AudioKey = audioKey
		s.AudioStatus = storyModel.AudioStatusReady
		s.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeStoryRepo) UpdateAudioStatus(ctx context.Context, id string, status storyModel.AudioStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stories[id]; ok {
		s.AudioStatus = status
		s.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeStoryRepo) SetFavorite(ctx context.Context, id string, favorite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stories[id]; ok {
		s.IsFavorite = favorite
	}
	return nil
}

func (r *fakeStoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stories, id)
	return nil
}

func (r *fakeStoryRepo) status(id string) storyModel.AudioStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stories[id].AudioStatus
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*storyModel.ChildProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*storyModel.ChildProfile)}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *storyModel.ChildProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, id string) (*storyModel.ChildProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) FindByUserID(ctx context.Context, userID string) ([]*storyModel.ChildProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*storyModel.ChildProfile
	for _, p := range r.profiles {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, id string, update bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil
	}
	if set, ok := update["$set"].(bson.M); ok {
		if v, ok := set["name"].(string); ok {
			p.Name = v
		}
		if v, ok := set["age"].(int); ok {
			p.Age = v
		}
		if v, ok := set["interests"].(string); ok {
			p.Interests = v
		}
	}
	return nil
}

func (r *fakeProfileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

type fakePresetRepo struct {
	mu      sync.Mutex
	presets map[string]*storyModel.VoicePreset
}

func newFakePresetRepo() *fakePresetRepo {
	return &fakePresetRepo{presets: make(map[string]*storyModel.VoicePreset)}
}

func (r *fakePresetRepo) Create(ctx context.Context, p *storyModel.VoicePreset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.presets[p.ID] = &cp
	return nil
}

func (r *fakePresetRepo) FindByID(ctx context.Context, id string) (*storyModel.VoicePreset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.presets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (r *fakePresetRepo) FindByUserID(ctx context.Context, userID string) ([]*storyModel.VoicePreset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*storyModel.VoicePreset
	for _, p := range r.presets {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePresetRepo) Update(ctx context.Context, id string, update bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.presets[id]
	if !ok {
		return nil
	}
	if set, ok := update["$set"].(bson.M); ok {
		if v, ok := set["name"].(string); ok {
			p.Name = v
		}
		if v, ok := set["description"].(string); ok {
			p.Description = v
		}
	}
	return nil
}

func (r *fakePresetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.presets, id)
	return nil
}

func (r *fakePresetRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.presets)
}

// fakeCreds resolves keys from a static map
type fakeCreds struct {
	keys map[service.Provider]string
}

func (f *fakeCreds) Resolve(ctx context.Context, userID string, provider service.Provider) (string, error) {
	key, ok := f.keys[provider]
	if !ok {
		return "", service.ErrMissingCredential
	}
	return key, nil
}

// fakeText returns canned model output
type fakeText struct {
	mu      sync.Mutex
	output  string
	err     error
	prompts []string
}

func (f *fakeText) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func (f *fakeText) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// fakeTTS records synthesis requests and returns canned audio
type fakeTTS struct {
	mu         sync.Mutex
	utterances [][]hume.Utterance
	synthErr   error
	createErr  error
	deleteErr  error
	deleted    []string
	gate       chan struct{} // when set, Synthesize blocks until closed
	started    chan struct{} // when set, closed once Synthesize is entered
}

func (f *fakeTTS) Synthesize(ctx context.Context, apiKey string, utterances []hume.Utterance) (*hume.Synthesis, error) {
	f.mu.Lock()
	f.utterances = append(f.utterances, utterances)
	started := f.started
	f.started = nil
	gate := f.gate
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}

	if f.synthErr != nil {
		return nil, f.synthErr
	}
	return &hume.Synthesis{
		GenerationID: "gen-123",
		Audio:        []byte("RIFF-fake-wav"),
		Duration:     42.5,
	}, nil
}

func (f *fakeTTS) CreateVoice(ctx context.Context, apiKey, name, generationID string) error {
	return f.createErr
}

func (f *fakeTTS) DeleteVoice(ctx context.Context, apiKey, voiceID string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, voiceID)
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeTTS) synthCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.utterances)
}

func (f *fakeTTS) lastUtterances() []hume.Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.utterances) == 0 {
		return nil
	}
	return f.utterances[len(f.utterances)-1]
}

// fakeStorage keeps blobs in a map
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	f.objects[key] = b
	f.mu.Unlock()
	return "fake://" + key, nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	delete(f.objects, key)
	f.mu.Unlock()
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) GetStorageType() string { return "fake" }

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// testEnv bundles a service and its fakes
type testEnv struct {
	svc      *Service
	stories  *fakeStoryRepo
	profiles *fakeProfileRepo
	presets  *fakePresetRepo
	creds    *fakeCreds
	text     *fakeText
	tts      *fakeTTS
	store    *fakeStorage
}

func newTestEnv() *testEnv {
	env := &testEnv{
		stories:  newFakeStoryRepo(),
		profiles: newFakeProfileRepo(),
		presets:  newFakePresetRepo(),
		creds: &fakeCreds{keys: map[service.Provider]string{
			service.ProviderOpenAI: "sk-test",
			service.ProviderHume:   "hume-test",
		}},
		text:  &fakeText{},
		tts:   &fakeTTS{},
		store: newFakeStorage(),
	}

	env.svc = New(
		Repos{
			Stories:  env.stories,
			Profiles: env.profiles,
			Presets:  env.presets,
		},
		env.creds,
		env.text,
		env.tts,
		env.store,
		nil,
		time.Hour,
	)
	return env
}
