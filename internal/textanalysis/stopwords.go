package textanalysis

// DefaultStopwordList is the built-in English stopword list used when no
// custom list has been saved in settings.
var DefaultStopwordList = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has", "he",
	"in", "is", "it", "its", "of", "on", "that", "the", "to", "was", "will", "with",
	"i", "you", "we", "they", "this", "but", "or", "not", "if", "can", "my", "your",
	"all", "one", "two", "more", "been", "have", "had", "do", "does", "done", "so",
	"up", "out", "about", "into", "through", "during", "before", "after", "above",
	"below", "between", "under", "again", "further", "then", "once", "there", "when",
	"where", "why", "how", "both", "each", "few", "most", "other", "some",
	"such", "no", "nor", "only", "own", "same", "than", "too", "very", "just",
}

// DefaultStopwords returns the built-in stopword set.
func DefaultStopwords() Stopwords {
	return NewStopwords(DefaultStopwordList)
}
