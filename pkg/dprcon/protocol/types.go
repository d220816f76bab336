//Package protocol implements the DarkPlaces rcon wire format: out-of-band
//packet framing, the three authentication payloads (plaintext, time-salted
//HMAC-MD4, challenge HMAC-MD4) and response demultiplexing.
package protocol

//Mode selects the authentication scheme of outgoing command packets.
//The values mirror the server's rcon_secure cvar.
type Mode int

//Available authentication modes
const (
	//ModeInsecure sends the password verbatim (rcon_secure 0).
	//Vulnerable to passive capture and replay, least secure mode.
	ModeInsecure Mode = iota
	//ModeTime signs each command with HMAC-MD4 over a time-salted message (rcon_secure 1)
	ModeTime
	//ModeChallenge signs each command with HMAC-MD4 over a server-issued challenge (rcon_secure 2)
	ModeChallenge
)

//PacketKind contains all classes an incoming datagram may decode to
var PacketKind = struct {
	Unknown   byte
	Command   byte
	Challenge byte
}{
	Unknown:   0x00,
	Command:   0x01,
	Challenge: 0x02,
}

//Response is one decoded incoming datagram
type Response struct {
	Kind    byte
	Payload []byte
}
