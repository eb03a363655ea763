package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"punctuation separates", "Section 304-A, IPC:", []string{"section", "304", "a", "ipc"}},
		{"full width folds to ascii", "ＤＲＩＶＩＮＧ licence", []string{"driving", "licence"}},
		{"mixed alnum runs stay whole", "s.498A r/w 34", []string{"s", "498a", "r", "w", "34"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBigramsAndUnique(t *testing.T) {
	assert.Nil(t, Bigrams([]string{"one"}))
	assert.Equal(t, []string{"driving without", "without license"}, Bigrams([]string{"driving", "without", "license"}))
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "₹₹", Truncate("₹₹₹", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, 3, RuneLen("₹₹₹"))
}

func TestStopWords(t *testing.T) {
	sw := DefaultQueryStopWords()
	assert.True(t, sw.Contains("the"))
	assert.True(t, sw.Contains("act"))
	assert.True(t, sw.Contains("punishment"))
	assert.False(t, sw.Contains("driving"))
	assert.False(t, sw.Contains("without"))
	assert.False(t, sw.Contains("302"))

	assert.Equal(t, []string{"murder", "302"}, sw.Filter([]string{"the", "murder", "section", "302"}))

	custom := NewStopWords([]string{" Foo ", ""})
	assert.Equal(t, 1, custom.Len())
	assert.True(t, custom.Contains("foo"))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no terminal", "no terminal here", []string{"no terminal here"}},
		{"mixed terminals and whitespace runs", "First one. Second!  Third?\nFourth",
			[]string{"First one.", "Second!", "Third?", "Fourth"}},
		{"terminal without whitespace does not split", "Dr.Smith said. Ok", []string{"Dr.Smith said.", "Ok"}},
		{"trailing whitespace leaves empty tail", "end. ", []string{"end.", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text, phrase string
		want         bool
	}{
		{"the theft case", "theft", true},
		{"thefts were reported", "theft", false},
		{"anti-theft device", "theft", true},
		{"the murderer", "murder", false},
		{"the murderer and the murder", "murder", true},
		{"under the mv act today", "mv act", true},
		{"murder", "murder", true},
		{"anything", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsWord(tt.text, tt.phrase), "%q in %q", tt.phrase, tt.text)
	}
}

func TestPhraseMatcher(t *testing.T) {
	m := NewPhraseMatcher([]string{"hurt", "grievous hurt", "theft", "Motor Vehicles Act", "  "})
	assert.Len(t, m.Phrases(), 4)

	got := m.Match("Grievous hurt and THEFT under the motor vehicles act")
	assert.Equal(t, []string{"hurt", "grievous hurt", "theft", "Motor Vehicles Act"}, got)

	assert.Empty(t, m.Match("hurtful thefts"))
	assert.False(t, m.Any(""))
	assert.True(t, m.Any("a case of theft"))
}

func TestPhraseMatcher_ConcurrentUse(t *testing.T) {
	m := NewPhraseMatcher([]string{"murder", "rape", "theft"})
	done := make(chan []string, 16)
	for i := 0; i < 16; i++ {
		go func() { done <- m.Match("murder and theft") }()
	}
	for i := 0; i < 16; i++ {
		assert.Equal(t, []string{"murder", "theft"}, <-done)
	}
}

func TestHTMLToText(t *testing.T) {
	markup := `<html><head><title>State v. Ram</title><style>p{color:red}</style></head>
<body><p>  The appeal is dismissed. </p><div>Accused convicted<script>track()</script></div></body></html>`

	got, err := HTMLToText(markup)
	require.NoError(t, err)
	assert.Equal(t, "State v. Ram\nThe appeal is dismissed.\nAccused convicted", got)

	empty, err := HTMLToText("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
