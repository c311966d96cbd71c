package storyteller

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func validIdeasJSON() string {
	return `{"stories":[
		{"id":"1","title":"The Lonely Stegosaurus","description":"A young stegosaurus searches for friends."},
		{"id":"2","title":"Moonlight Picnic","description":"Two rabbits share a picnic under the stars."},
		{"id":"3","title":"The Sleepy Cloud","description":"A little cloud learns how to rest."},
		{"id":"4","title":"Captain Pillow","description":"A pillow becomes a ship for dreamland."},
		{"id":"5","title":"The Humming Garden","description":"Flowers hum a lullaby for a tired bee."}
	]}`
}

func TestParseIdeas(t *testing.T) {
	Convey("ParseIdeas accepts a well-formed response", t, func() {
		ideas, err := ParseIdeas(validIdeasJSON())
		So(err, ShouldBeNil)
		So(ideas, ShouldHaveLength, IdeaCount)
		So(ideas[0].Title, ShouldEqual, "The Lonely Stegosaurus")
		So(ideas[4].ID, ShouldEqual, "5")
	})

	Convey("ParseIdeas tolerates markdown code fences", t, func() {
		fenced := "```json\n" + validIdeasJSON() + "\n```"
		ideas, err := ParseIdeas(fenced)
		So(err, ShouldBeNil)
		So(ideas, ShouldHaveLength, IdeaCount)
	})

	Convey("ParseIdeas rejects malformed responses", t, func() {
		Convey("not JSON", func() {
			_, err := ParseIdeas("Here are five great ideas for you!")
			So(err, ShouldNotBeNil)
		})

		Convey("wrong count", func() {
			_, err := ParseIdeas(`{"stories":[{"id":"1","title":"One","description":"Only one."}]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "expected 5")
		})

		Convey("duplicate ids", func() {
			_, err := ParseIdeas(`{"stories":[
				{"id":"1","title":"A","description":"a"},
				{"id":"1","title":"B","description":"b"},
				{"id":"3","title":"C","description":"c"},
				{"id":"4","title":"D","description":"d"},
				{"id":"5","title":"E","description":"e"}
			]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "duplicate")
		})

		Convey("empty title", func() {
			_, err := ParseIdeas(`{"stories":[
				{"id":"1","title":"  ","description":"a"},
				{"id":"2","title":"B","description":"b"},
				{"id":"3","title":"C","description":"c"},
				{"id":"4","title":"D","description":"d"},
				{"id":"5","title":"E","description":"e"}
			]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "empty title")
		})

		Convey("title over the word cap", func() {
			longTitle := "a b c d e f g h i j k"
			_, err := ParseIdeas(fmt.Sprintf(`{"stories":[
				{"id":"1","title":"%s","description":"a"},
				{"id":"2","title":"B","description":"b"},
				{"id":"3","title":"C","description":"c"},
				{"id":"4","title":"D","description":"d"},
				{"id":"5","title":"E","description":"e"}
			]}`, longTitle))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "words")
		})
	})
}

func TestBuildIdeasPrompt(t *testing.T) {
	Convey("BuildIdeasPrompt embeds the child descriptor", t, func() {
		child := ChildDescriptor{Name: "Mia", Age: 5, Interests: "dinosaurs"}
		prompt := BuildIdeasPrompt(child, nil)

		So(prompt, ShouldContainSubstring, "Mia")
		So(prompt, ShouldContainSubstring, "5 years old")
		So(prompt, ShouldContainSubstring, "dinosaurs")
		So(prompt, ShouldNotContainSubstring, "already taken")
	})

	Convey("BuildIdeasPrompt lists titles to avoid", t, func() {
		child := ChildDescriptor{Name: "Mia", Age: 5, Interests: "dinosaurs"}
		prompt := BuildIdeasPrompt(child, []string{"The Lonely Stegosaurus", "Moonlight Picnic"})

		So(prompt, ShouldContainSubstring, "already taken")
		So(prompt, ShouldContainSubstring, "The Lonely Stegosaurus, Moonlight Picnic")
	})
}

func TestBuildStoryPrompt(t *testing.T) {
	Convey("BuildStoryPrompt embeds idea and constraints", t, func() {
		idea := Idea{ID: "2", Title: "The Lonely Stegosaurus", Description: "A young stegosaurus searches for friends."}
		child := ChildDescriptor{Name: "Mia", Age: 5, Interests: "dinosaurs"}
		prompt := BuildStoryPrompt(idea, child)

		So(prompt, ShouldContainSubstring, `"The Lonely Stegosaurus"`)
		So(prompt, ShouldContainSubstring, "searches for friends")
		So(prompt, ShouldContainSubstring, "Mia")
		So(prompt, ShouldContainSubstring, "800-1000 words")
		So(prompt, ShouldContainSubstring, "No more than 5000 characters")
		So(prompt, ShouldContainSubstring, "positive message or moral")
		So(prompt, ShouldContainSubstring, "calm, peaceful conclusion")
	})
}
