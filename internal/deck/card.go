package deck

// Kind distinguishes the three pools a card can belong to.
type Kind string

const (
	KindPrefix Kind = "prefix"
	KindRoot   Kind = "root"
	KindSuffix Kind = "suffix"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPrefix, KindRoot, KindSuffix:
		return true
	}
	return false
}

// Card is an immutable word part. Identity within a round is the Word.
type Card struct {
	Word       string `json:"word"`
	Kind       Kind   `json:"kind"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Color returns the Slack attachment color for the card's kind.
func (c Card) Color() string {
	switch c.Kind {
	case KindRoot:
		return "#0F13DB"
	case KindPrefix:
		return "good"
	default:
		return "danger"
	}
}

func (c Card) String() string {
	return string(c.Kind) + " " + c.Word
}
