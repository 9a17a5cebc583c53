// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	stdmail "net/mail"
	"strings"

	"github.com/emersion/go-message/charset"
)

// ExtractText pulls the trainable text out of a raw rfc822 message: the
// decoded subject followed by the first text part of the body. HTML-only
// and binary-only messages yield just the subject.
func ExtractText(rawMail []byte) (string, error) {
	msg, err := stdmail.ReadMessage(bytes.NewReader(rawMail))
	if err != nil {
		return "", fmt.Errorf("could not parse mail: %w", err)
	}

	dec := &mime.WordDecoder{
		CharsetReader: charset.Reader,
	}
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		return "", fmt.Errorf("could not decode subject header: %w", err)
	}

	body, err := textBody(
		msg.Header.Get("Content-Type"),
		msg.Header.Get("Content-Transfer-Encoding"),
		msg.Body,
	)
	if err != nil {
		return "", fmt.Errorf("could not extract body: %w", err)
	}

	return strings.TrimSpace(subject + "\n" + body), nil
}

func textBody(contentType, encoding string, r io.Reader) (string, error) {
	if contentType == "" {
		return readText(encoding, "", r)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Tolerate broken headers the way mail clients do
		return readText(encoding, "", r)
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := multipart.NewReader(r, params["boundary"])
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				return "", nil
			}
			if err != nil {
				return "", fmt.Errorf("could not read next part: %w", err)
			}

			partType := part.Header.Get("Content-Type")
			partMedia, _, err := mime.ParseMediaType(partType)
			if err != nil {
				partMedia = "text/plain"
			}
			if partMedia == "text/plain" || strings.HasPrefix(partMedia, "multipart/") {
				return textBody(partType, part.Header.Get("Content-Transfer-Encoding"), part)
			}
		}
	}

	if strings.HasPrefix(mediaType, "text/") {
		return readText(encoding, params["charset"], r)
	}

	return "", nil
}

func readText(encoding, charsetName string, r io.Reader) (string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}

	if charsetName != "" && !strings.EqualFold(charsetName, "utf-8") && !strings.EqualFold(charsetName, "us-ascii") {
		decoded, err := charset.Reader(charsetName, r)
		if err != nil {
			return "", fmt.Errorf("unsupported charset %s: %w", charsetName, err)
		}
		r = decoded
	}

	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("could not read body: %w", err)
	}

	return string(text), nil
}
