package example

type Emotion string

const (
	EmotionHurt Emotion = "hurt"
	EmotionSad  Emotion = "sad"
)

type ContextStatus string

const (
	ContextStatusPending  ContextStatus = "pending"
	ContextStatusRevealed ContextStatus = "revealed"
)

type SharedContext struct {
	Title  string
	Status ContextStatus
}

type Submission struct {
	Body    string
	Emotion *Emotion
}

func bad() {
	sc := &SharedContext{}
	sc.Status = "revealed" // want "enum field Status \\(ContextStatus\\) assigned string literal"

	_ = SharedContext{Title: "dinner", Status: "pending"} // want "enum field Status \\(ContextStatus\\) set from string literal"
}

func good() {
	sc := &SharedContext{Title: "dinner"}
	sc.Status = ContextStatusRevealed

	e := EmotionHurt
	s := Submission{Body: "hi", Emotion: &e}
	_ = s
}

func conversionIsAllowed(raw string) {
	sc := &SharedContext{Status: ContextStatus(raw)}
	_ = sc
}
