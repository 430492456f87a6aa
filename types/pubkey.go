package types

// Public key wire constants.
const (
	KeyTypeEcdsa   = "ecdsa"
	CurveSecp384r1 = "secp384r1"
)

// PublicKey is the verification key handed to the verify capability.
//
// WARNING: any modification breaks compatibility with the host.
type PublicKey struct {
	Type  string `msgpack:"type"`
	Curve string `msgpack:"curve"`
	Value []byte `msgpack:"value"`
}

// NewEcdsaPublicKey wraps a secp384r1 public key.
func NewEcdsaPublicKey(value []byte) PublicKey {
	return PublicKey{Type: KeyTypeEcdsa, Curve: CurveSecp384r1, Value: value}
}

// EncodePublicKey encodes the key tagged by name.
func EncodePublicKey(pk PublicKey) ([]byte, error) {
	return SerializeNamed(pk)
}

// DecodePublicKey decodes a key and rejects unsupported key types or curves.
func DecodePublicKey(buf []byte) (PublicKey, error) {
	var pk PublicKey
	if err := Deserialize(buf, &pk); err != nil {
		return PublicKey{}, err
	}
	if pk.Type != KeyTypeEcdsa || pk.Curve != CurveSecp384r1 {
		return PublicKey{}, ErrDeserialization
	}
	return pk, nil
}
