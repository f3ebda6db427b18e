package models

// Sentence is a prompt the contributor reads aloud while recording a clip.
type Sentence struct {
	// ID is the server-side sentence identifier (a content hash).
	ID string `json:"id"`

	// Text is the sentence to be read.
	Text string `json:"text"`
}

// Clip is a recorded reading of a sentence waiting for, or having received,
// validation votes.
type Clip struct {
	// ID is the server-side clip identifier used in vote paths.
	ID string `json:"id"`

	// Glob is the storage prefix of the audio file.
	Glob string `json:"glob"`

	// Sentence is the sentence the clip is a reading of.
	Sentence Sentence `json:"sentence"`

	// AudioSrc is a signed URL the audio can be streamed from.
	AudioSrc string `json:"audioSrc"`
}

// ClipUpload is the metadata sent along with a recorded clip. It travels in
// request headers while the audio itself is the raw request body.
type ClipUpload struct {
	// Audio is the encoded recording.
	Audio []byte

	// ContentType is the media type of Audio (e.g. "audio/ogg; codecs=opus").
	ContentType string

	// SentenceID identifies the sentence that was read.
	SentenceID string

	// Sentence is the sentence text; it is percent-encoded on the wire.
	Sentence string
}

// ClipUploadResult is returned by the backend after a clip was stored.
type ClipUploadResult struct {
	FilePrefix string `json:"filePrefix"`
}

// Vote is the body of a vote cast on a clip.
type Vote struct {
	IsValid bool `json:"isValid"`
}

// VoteResult acknowledges a vote.
type VoteResult struct {
	Glob string `json:"glob"`
}
