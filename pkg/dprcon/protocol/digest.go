package protocol

import (
	"crypto/hmac"

	"golang.org/x/crypto/md4"
)

//DigestSize is the length of an HMAC-MD4 digest inside a signed packet
const DigestSize = md4.Size

//hmacMD4 computes the keyed digest mandated by the wire protocol.
//MD4 is cryptographically broken; it is kept solely for compatibility
//with legacy servers and must not be reused for anything else.
func hmacMD4(key, message []byte) []byte {
	mac := hmac.New(md4.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

//VerifyDigest reports whether digest matches HMAC-MD4(key, message)
func VerifyDigest(key, message, digest []byte) bool {
	return hmac.Equal(hmacMD4(key, message), digest)
}
