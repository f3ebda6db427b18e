package gateway

import (
	"encoding/json"
	"fmt"
)

type bodyKind int

const (
	bodyNone bodyKind = iota
	bodyBinary
	bodyJSON
)

// Body is the request payload: none, raw binary media, or a value to be
// serialised as JSON. The zero value is [NoBody].
type Body struct {
	kind        bodyKind
	data        []byte
	contentType string
	value       any
}

// NoBody sends no payload.
func NoBody() Body {
	return Body{}
}

// octetStream labels binary bodies sent without a media type.
const octetStream = "application/octet-stream"

// BinaryBody sends data unmodified with the given media type, or
// application/octet-stream when contentType is empty.
func BinaryBody(data []byte, contentType string) Body {
	if contentType == "" {
		contentType = octetStream
	}
	return Body{kind: bodyBinary, data: data, contentType: contentType}
}

// JSONBody serialises v as JSON. A nil v sends no payload.
func JSONBody(v any) Body {
	if v == nil {
		return Body{}
	}
	return Body{kind: bodyJSON, value: v}
}

// ContentType is the media type of a binary body, empty otherwise.
func (b Body) ContentType() string {
	if b.kind != bodyBinary {
		return ""
	}
	return b.contentType
}

// encode returns the wire bytes, nil for no body.
func (b Body) encode() ([]byte, error) {
	switch b.kind {
	case bodyBinary:
		if b.data == nil {
			return []byte{}, nil
		}
		return b.data, nil
	case bodyJSON:
		payload, err := json.Marshal(b.value)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return payload, nil
	default:
		return nil, nil
	}
}
