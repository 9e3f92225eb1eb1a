// Package textanalysis provides pure text heuristics for prompt and metadata
// analysis: word extraction with stopword filtering, positive-prompt
// truncation, and ordered-rule field extraction. It holds no state and
// performs no I/O.
//
// Word extraction is a coarse tokenizer, not an NLP pipeline: it keeps
// alphanumeric tokens (hyphens allowed inside), lowercases everything, and
// drops short tokens and stopwords.
package textanalysis
