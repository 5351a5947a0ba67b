// Package principal implements the textual encoding of platform principals
// as carried by participant QR codes.
package principal

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"hash/crc32"
	"strings"

	"wheeladmin/internal/errorx"
)

const maxLength = 29

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

var anonymous = Principal{raw: []byte{0x04}}

// Principal is an opaque account identifier.
type Principal struct {
	raw []byte
}

func Anonymous() Principal {
	return anonymous
}

func FromBytes(b []byte) (Principal, error) {
	if len(b) > maxLength {
		return Principal{}, errorx.NewInvalidArgument("principal is longer than %d bytes", maxLength)
	}
	return Principal{raw: bytes.Clone(b)}, nil
}

// Parse decodes and validates the textual form, e.g. "2vxsx-fae".
func Parse(text string) (Principal, error) {
	text = strings.TrimSpace(text)
	compact := strings.ToUpper(strings.ReplaceAll(text, "-", ""))
	decoded, err := encoding.DecodeString(compact)
	if err != nil {
		return Principal{}, errorx.NewInvalidArgument("invalid principal %q: %v", text, err)
	}
	if len(decoded) < 4 {
		return Principal{}, errorx.NewInvalidArgument("invalid principal %q: too short", text)
	}
	p, err := FromBytes(decoded[4:])
	if err != nil {
		return Principal{}, err
	}
	if binary.BigEndian.Uint32(decoded[:4]) != crc32.ChecksumIEEE(p.raw) {
		return Principal{}, errorx.NewInvalidArgument("invalid principal %q: checksum mismatch", text)
	}
	if p.String() != text {
		return Principal{}, errorx.NewInvalidArgument("invalid principal %q: not in canonical form", text)
	}
	return p, nil
}

func (p Principal) String() string {
	buf := make([]byte, 4, 4+len(p.raw))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(p.raw))
	buf = append(buf, p.raw...)
	enc := strings.ToLower(encoding.EncodeToString(buf))

	var b strings.Builder
	for i := 0; i < len(enc); i += 5 {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(enc[i:min(i+5, len(enc))])
	}
	return b.String()
}

func (p Principal) Bytes() []byte {
	return bytes.Clone(p.raw)
}

func (p Principal) IsAnonymous() bool {
	return bytes.Equal(p.raw, anonymous.raw)
}

func (p Principal) Equal(o Principal) bool {
	return bytes.Equal(p.raw, o.raw)
}
