package analysis_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
)

var _ = Describe("FallbackBridge", func() {
	It("flags absolute language as criticism and rewrites with an I-statement", func() {
		a := analysis.FallbackBridge("You always ignore me about dinner plans")

		Expect(a.HorsemenFlags).To(ContainElement(model.HorsemanCriticism))
		Expect(a.DetectedHorsemen).NotTo(BeEmpty())
		Expect(strings.ToLower(a.DetectedHorsemen[0].Quote)).To(Equal("you always"))
		Expect(a.TransformedText).To(HavePrefix("I'm feeling upset"))
		Expect(a.TransformedText).To(ContainSubstring("I notice that sometimes ignore me about dinner plans"))
		Expect(a.Sentiment).To(Equal("tense"))
	})

	DescribeTable("matches each horseman rule",
		func(text string, expected []model.Horseman) {
			a := analysis.FallbackBridge(text)
			Expect(a.HorsemenFlags).To(Equal(expected))
		},
		Entry("withdrawal", "Whatever, do what you want", []model.Horseman{model.HorsemanStonewalling}),
		Entry("blame deflection", "It's not my fault the car broke", []model.Horseman{model.HorsemanDefensiveness}),
		Entry("mockery", "That plan is ridiculous", []model.Horseman{model.HorsemanContempt}),
		Entry("rules in fixed order", "That's ridiculous, you never listen. I'm done",
			[]model.Horseman{model.HorsemanCriticism, model.HorsemanStonewalling, model.HorsemanContempt}),
		Entry("nothing destructive", "Can we talk about the weekend?", []model.Horseman{}),
	)

	It("stays neutral when nothing is flagged", func() {
		a := analysis.FallbackBridge("Can we talk about the weekend?")
		Expect(a.Sentiment).To(Equal("neutral"))
		Expect(a.Suggestions).To(ConsistOf("Good job expressing yourself!"))
	})

	DescribeTable("keeps flags and detected horsemen consistent with a non-empty rewrite",
		func(text string) {
			a := analysis.FallbackBridge(text)
			Expect(a.HorsemenFlags).To(HaveLen(len(a.DetectedHorsemen)))
			for i, d := range a.DetectedHorsemen {
				Expect(d.Type).To(Equal(a.HorsemenFlags[i]))
				Expect(d.Type.Valid()).To(BeTrue())
			}
			Expect(a.TransformedText).NotTo(BeEmpty())
		},
		Entry("short", "ok?"),
		Entry("every rule", "You never help, whatever, but you said it's ridiculous"),
		Entry("unicode", "Tu ne m'écoutes jamais 😞"),
		Entry("whitespace heavy", "   you always   "),
	)
})

var _ = Describe("FallbackRetro", func() {
	DescribeTable("fills every required category",
		func(narrative string) {
			a := analysis.FallbackRetro(narrative)
			Expect(a.VideoFacts).NotTo(BeEmpty())
			Expect(a.Interpretations).NotTo(BeEmpty())
			Expect(a.MindReads).NotTo(BeEmpty())
			Expect(a.EmotionalUndertones).To(Equal([]string{"Processing", "Seeking understanding"}))
		},
		Entry("first pizza narrative", "I thought we agreed on pepperoni, but she ordered hawaiian. I felt unheard."),
		Entry("second pizza narrative", "I just wanted to surprise him with something sweet and savory. He seemed so angry over nothing."),
		Entry("no punctuation", "dinner"),
		Entry("only punctuation", "...!?"),
	)

	It("classifies sentences by keyword", func() {
		a := analysis.FallbackRetro("She texted at 7. He seemed upset. He did it because he wanted attention.")

		Expect(a.VideoFacts).To(ConsistOf("She texted at 7"))
		Expect(a.Interpretations).To(ConsistOf("He seemed upset"))
		Expect(a.MindReads).To(ConsistOf("He did it because he wanted attention"))
	})

	It("examines at most six sentences and caps each list", func() {
		a := analysis.FallbackRetro("He said a. He said b. He said c. He said d. He said e. He said f. He seemed g.")

		Expect(a.VideoFacts).To(HaveLen(3))
		Expect(a.Interpretations).To(ConsistOf("Narrator has feelings about the situation"))
	})
})

var _ = Describe("MockBridge", func() {
	It("returns the canned response", func() {
		a := analysis.MockBridge("this is a long message about chores")

		Expect(a.HorsemenFlags).To(Equal([]model.Horseman{model.HorsemanCriticism}))
		Expect(a.DetectedHorsemen[0].Quote).To(Equal("this is a long messa"))
		Expect(a.TransformedText).To(Equal("[MOCK] I feel frustrated when I see this is a long message about chores because I need support."))
	})
})
