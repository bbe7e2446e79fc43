package genre

// Genre is a row of the fixed, pre-seeded vocabulary.
// Users never create genres; only seeded rows may be referenced.
type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Vocabulary is the closed allow-list of valid genre names.
// Seeded into the genres table at startup.
var Vocabulary = []string{
	"Fiction",
	"Non-fiction",
	"Mystery",
	"Fantasy",
	"Science Fiction",
	"Romance",
	"Thriller",
	"Horror",
	"Biography",
	"History",
	"Poetry",
	"Children",
}

// IsAllowed reports whether a name belongs to the vocabulary (exact match)
func IsAllowed(name string) bool {
	for _, v := range Vocabulary {
		if v == name {
			return true
		}
	}
	return false
}
