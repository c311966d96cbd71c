package story

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	storyModel "lull/internal/model/story"
	"lull/internal/pkg/storyteller"
	"lull/internal/service"
)

func seedStory(env *testEnv, st *storyModel.Story) *storyModel.Story {
	if st.AudioStatus == "" {
		st.AudioStatus = storyModel.AudioStatusPending
	}
	_ = env.stories.Create(context.Background(), st)
	return st
}

func TestSynthesizeAudio(t *testing.T) {
	ctx := context.Background()

	Convey("SynthesizeAudio narrates a story end to end", t, func() {
		env := newTestEnv()
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "user-1",
			Title:            "The Sleepy Cloud",
			Content:          "Once there was a cloud...",
			VoiceDescription: "a calm grandmother voice",
		})

		result, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
		So(err, ShouldBeNil)

		Convey("the story ends ready with an audio key", func() {
			So(result.AudioStatus, ShouldEqual, storyModel.AudioStatusReady)
			So(result.AudioKey, ShouldNotBeEmpty)

			persisted, _ := env.stories.FindByID(ctx, st.ID)
			So(persisted.AudioStatus, ShouldEqual, storyModel.AudioStatusReady)
			So(persisted.AudioKey, ShouldEqual, result.AudioKey)
		})

		Convey("the audio blob is stored", func() {
			exists, _ := env.store.Exists(ctx, result.AudioKey)
			So(exists, ShouldBeTrue)
		})

		Convey("the description voice was used", func() {
			utts := env.tts.lastUtterances()
			So(utts, ShouldHaveLength, 1)
			So(utts[0].Description, ShouldEqual, "a calm grandmother voice")
			So(utts[0].Voice, ShouldBeNil)
			So(utts[0].Text, ShouldEqual, st.Content)
		})
	})

	Convey("a missing speech credential stops everything before the story is touched", t, func() {
		env := newTestEnv()
		delete(env.creds.keys, service.ProviderHume)
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "user-1",
			Content:          "text",
			VoiceDescription: "any",
		})

		_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
		So(errors.Is(err, service.ErrMissingCredential), ShouldBeTrue)
		So(env.stories.status(st.ID), ShouldEqual, storyModel.AudioStatusPending)
		So(env.tts.synthCount(), ShouldEqual, 0)
	})

	Convey("a story owned by someone else is rejected", t, func() {
		env := newTestEnv()
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "owner",
			Content:          "text",
			VoiceDescription: "any",
		})

		_, err := env.svc.SynthesizeAudio(ctx, "intruder", st.ID)
		So(errors.Is(err, service.ErrUnauthorized), ShouldBeTrue)
		So(env.stories.status(st.ID), ShouldEqual, storyModel.AudioStatusPending)
		So(env.tts.synthCount(), ShouldEqual, 0)
	})

	Convey("an unknown story is not found", t, func() {
		env := newTestEnv()

		_, err := env.svc.SynthesizeAudio(ctx, "user-1", "no-such-story")
		So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
	})

	Convey("a synthesis failure marks the story error", t, func() {
		env := newTestEnv()
		env.tts.synthErr = errors.New("provider exploded")
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "user-1",
			Content:          "text",
			VoiceDescription: "any",
		})

		_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
		So(errors.Is(err, service.ErrSynthesisFailed), ShouldBeTrue)
		So(env.stories.status(st.ID), ShouldEqual, storyModel.AudioStatusError)
	})

	Convey("a storage failure marks the story error and keeps no audio", t, func() {
		env := newTestEnv()
		env.store.uploadErr = errors.New("disk full")
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "user-1",
			Content:          "text",
			VoiceDescription: "any",
		})

		_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
		So(errors.Is(err, service.ErrStorageFailed), ShouldBeTrue)
		So(env.stories.status(st.ID), ShouldEqual, storyModel.AudioStatusError)
		So(env.store.count(), ShouldEqual, 0)

		persisted, _ := env.stories.FindByID(ctx, st.ID)
		So(persisted.AudioKey, ShouldBeEmpty)
	})

	Convey("a retry after error runs the full pipeline again", t, func() {
		env := newTestEnv()
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "user-1",
			Content:          "text",
			VoiceDescription: "any",
			AudioStatus:      storyModel.AudioStatusError,
		})

		result, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
		So(err, ShouldBeNil)
		So(result.AudioStatus, ShouldEqual, storyModel.AudioStatusReady)
	})

	Convey("a story already generating is not picked up again", t, func() {
		env := newTestEnv()
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "user-1",
			Content:          "text",
			VoiceDescription: "any",
			AudioStatus:      storyModel.AudioStatusGenerating,
		})

		_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
		So(errors.Is(err, service.ErrSynthesisInProgress), ShouldBeTrue)
		So(env.tts.synthCount(), ShouldEqual, 0)
	})

	Convey("of two concurrent requests exactly one wins", t, func() {
		env := newTestEnv()
		st := seedStory(env, &storyModel.Story{
			ID:               "story-1",
			UserID:           "user-1",
			Content:          "text",
			VoiceDescription: "any",
		})

		started := make(chan struct{})
		gate := make(chan struct{})
		env.tts.started = started
		env.tts.gate = gate

		firstDone := make(chan error, 1)
		go func() {
			_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
			firstDone <- err
		}()

		// Wait until the first request holds the generating state, then
		// race the second against it.
		<-started
		_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
		So(errors.Is(err, service.ErrSynthesisInProgress), ShouldBeTrue)

		close(gate)
		So(<-firstDone, ShouldBeNil)
		So(env.stories.status(st.ID), ShouldEqual, storyModel.AudioStatusReady)
		So(env.tts.synthCount(), ShouldEqual, 1)
	})

	Convey("voice precedence", t, func() {
		Convey("a preset wins over the story's description", func() {
			env := newTestEnv()
			_ = env.presets.Create(ctx, &storyModel.VoicePreset{
				ID:          "preset-1",
				UserID:      "user-1",
				Name:        "Grandma",
				HumeVoiceID: "voice-abc",
			})
			st := seedStory(env, &storyModel.Story{
				ID:               "story-1",
				UserID:           "user-1",
				Content:          "text",
				VoicePresetID:    "preset-1",
				VoiceDescription: "should be ignored",
			})

			_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
			So(err, ShouldBeNil)

			utts := env.tts.lastUtterances()
			So(utts[0].Voice, ShouldNotBeNil)
			So(utts[0].Voice.ID, ShouldEqual, "voice-abc")
			So(utts[0].Description, ShouldBeEmpty)
		})

		Convey("an unresolvable preset fails hard instead of falling back", func() {
			env := newTestEnv()
			st := seedStory(env, &storyModel.Story{
				ID:               "story-1",
				UserID:           "user-1",
				Content:          "text",
				VoicePresetID:    "gone",
				VoiceDescription: "should not be used",
			})

			_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
			So(env.tts.synthCount(), ShouldEqual, 0)
			So(env.stories.status(st.ID), ShouldEqual, storyModel.AudioStatusError)
		})

		Convey("a story with neither preset nor description gets the generic voice", func() {
			env := newTestEnv()
			st := seedStory(env, &storyModel.Story{
				ID:      "story-1",
				UserID:  "user-1",
				Content: "text",
			})

			_, err := env.svc.SynthesizeAudio(ctx, "user-1", st.ID)
			So(err, ShouldBeNil)

			utts := env.tts.lastUtterances()
			So(utts[0].Description, ShouldEqual, storyteller.FallbackVoiceDescription)
		})
	})
}
