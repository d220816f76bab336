package protocol

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/playnet-public/gorcon-dp/pkg/common"
)

var (
	commandPrefix   = append(append([]byte{}, oobHeader...), 'n')
	challengePrefix = []byte("challenge ")
)

//BuildCommandPacket creates one framed command packet for the given mode.
//ModeChallenge signs against the passed challenge token, which must have
//been obtained immediately before the call.
func BuildCommandPacket(mode Mode, password string, challenge []byte, command string) ([]byte, error) {
	switch mode {
	case ModeInsecure:
		return BuildInsecurePacket(password, command), nil
	case ModeTime:
		return BuildTimePacket(password, command), nil
	case ModeChallenge:
		return BuildChallengePacket(password, challenge, command), nil
	}
	return nil, common.ErrUnknownMode
}

//BuildInsecurePacket creates a plaintext "rcon" packet with the password verbatim
func BuildInsecurePacket(password, command string) []byte {
	return buildPacket([]byte("rcon " + password + " " + command))
}

//BuildTimePacket creates an "srcon HMAC-MD4 TIME" packet salted with the
//current unix time plus a random microsecond component
func BuildTimePacket(password, command string) []byte {
	return buildSignedPacket("TIME", password, timeSalt(), command)
}

//BuildChallengePacket creates an "srcon HMAC-MD4 CHALLENGE" packet signed
//against the server-issued challenge token
func BuildChallengePacket(password string, challenge []byte, command string) []byte {
	return buildSignedPacket("CHALLENGE", password, string(challenge), command)
}

//BuildChallengeRequest creates the unauthenticated "getchallenge" packet
func BuildChallengeRequest() []byte {
	return buildPacket([]byte("getchallenge"))
}

func buildSignedPacket(scheme, password, nonce, command string) []byte {
	digest := hmacMD4([]byte(password), []byte(nonce+" "+command))
	payload := append([]byte("srcon HMAC-MD4 "+scheme+" "), digest...)
	payload = append(payload, ' ')
	payload = append(payload, nonce...)
	payload = append(payload, ' ')
	payload = append(payload, command...)
	return buildPacket(payload)
}

//JoinPackets joins fully framed packets with a single NUL byte so they
//can be sent as one datagram
func JoinPackets(packets ...[]byte) []byte {
	return bytes.Join(packets, []byte{0x00})
}

//Decode classifies one incoming datagram. Unrecognized data decodes to
//PacketKind.Unknown with an empty payload and never errors; the game
//port carries unrelated traffic that must not bring down the client.
func Decode(data []byte) Response {
	if bytes.HasPrefix(data, commandPrefix) {
		return Response{Kind: PacketKind.Command, Payload: data[len(commandPrefix):]}
	}
	payload, ok := stripHeader(data)
	if !ok || !bytes.HasPrefix(payload, challengePrefix) {
		return Response{Kind: PacketKind.Unknown}
	}
	token := payload[len(challengePrefix):]
	//trailing data after a NUL is discarded
	if i := bytes.IndexByte(token, 0x00); i >= 0 {
		token = token[:i]
	}
	return Response{Kind: PacketKind.Challenge, Payload: token}
}

//timeSalt formats the current time as "<unix_seconds>.<6 digits>" with a
//random microsecond component to keep rapid re-signs from colliding
func timeSalt() string {
	return fmt.Sprintf("%d.%06d", time.Now().Unix(), rand.Intn(1000000))
}
