package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const sessionFormatVersionCurrent = 1

// ErrInvalidEncoding is returned by Decode for blobs that are not a valid session.
var ErrInvalidEncoding = errors.New("invalid session encoding")

// Encode serialises s as: version byte, length-prefixed UserID, length-prefixed
// Token, big-endian int64 CreatedAt.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}

	var buf bytes.Buffer
	buf.Grow(2 + len(s.UserID) + len(s.Token) + 8 + 1)

	buf.WriteByte(sessionFormatVersionCurrent)

	if len(s.UserID) > 255 {
		return nil, errors.New("userID too long")
	}
	buf.WriteByte(byte(len(s.UserID)))
	buf.WriteString(s.UserID)

	if len(s.Token) > 255 {
		return nil, errors.New("token too long")
	}
	buf.WriteByte(byte(len(s.Token)))
	buf.WriteString(s.Token)

	if err := binary.Write(&buf, binary.BigEndian, s.CreatedAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (*Session, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	if version != sessionFormatVersionCurrent {
		return nil, ErrInvalidEncoding
	}

	s := &Session{}

	userID, err := readShortString(reader)
	if err != nil {
		return nil, err
	}
	s.UserID = userID

	token, err := readShortString(reader)
	if err != nil {
		return nil, err
	}
	s.Token = token

	if err := binary.Read(reader, binary.BigEndian, &s.CreatedAt); err != nil {
		return nil, ErrInvalidEncoding
	}
	if reader.Len() != 0 {
		return nil, ErrInvalidEncoding
	}

	return s, nil
}

func readShortString(reader *bytes.Reader) (string, error) {
	n, err := reader.ReadByte()
	if err != nil {
		return "", ErrInvalidEncoding
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return "", ErrInvalidEncoding
	}
	return string(raw), nil
}
