package jwt

import (
	"encoding/json"
	"fmt"
	"time"

	"aptchat/pkg/consts"
	"aptchat/utilities"

	"github.com/dgrijalva/jwt-go"
	"gopkg.in/square/go-jose.v2"
)

type jwtClaims struct {
	Address   string `json:"addr"`
	PublicKey string `json:"pk"`
	jwt.StandardClaims
}

func getRSAKeyPair() (*jose.JSONWebKey, *jose.JSONWebKey, error) {
	var pvtKey, pubKey jose.JSONWebKey

	pvtKeyBytes := []byte(pvtKeyRaw)
	pubKeyBytes := []byte(pubKeyRaw)

	if err := pvtKey.UnmarshalJSON(pvtKeyBytes); err != nil {
		return nil, nil, err
	}

	if err := pubKey.UnmarshalJSON(pubKeyBytes); err != nil {
		return nil, nil, err
	}

	return &pvtKey, &pubKey, nil
}

func signPayload(key *jose.JSONWebKey, payload []byte) (jws string, err error) {
	signingKey := jose.SigningKey{Key: key, Algorithm: jose.RS256}

	signer, err := jose.NewSigner(signingKey, &jose.SignerOptions{})
	if err != nil {
		return "", err
	}

	signature, err := signer.Sign(payload)
	if err != nil {
		return "", err
	}

	return signature.CompactSerialize()
}

// GenerateJWT issues a session token carrying the wallet identity
func GenerateJWT(userID, address, publicKey string, ttl time.Duration) (string, int, error) {
	log := utilities.NewLogger("GenerateJWT")

	ttlInSecs := ttl.Seconds()
	expiryTime := time.Now().Add(ttl)
	claims := jwtClaims{
		address,
		publicKey,
		jwt.StandardClaims{
			Subject:   userID,
			Audience:  address,
			ExpiresAt: expiryTime.Unix(),
			Issuer:    consts.AppName,
			IssuedAt:  time.Now().Unix(),
		},
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", 0, err
	}

	signingKey, _, err := getRSAKeyPair()
	if err != nil {
		return "", 0, err
	}

	jwtToken, err := signPayload(signingKey, payload)
	if err != nil {
		return "", 0, err
	}

	log.Debugf("Token generated for %s with expiry %s", address, expiryTime)

	return jwtToken, int(ttlInSecs), nil
}

// VerifyJWT verifies a session token and returns its claims
func VerifyJWT(jwtToken string) (map[string]string, error) {
	log := utilities.NewLogger("VerifyJWT")

	jws, err := jose.ParseSigned(jwtToken)
	if err != nil {
		log.WithError(err).Error("token parsing failed")
		return nil, err
	}

	_, pubKey, err := getRSAKeyPair()
	if err != nil {
		log.WithError(err).Error("unable to get rsa key pair")
		return nil, err
	}

	payload, err := jws.Verify(pubKey)
	if err != nil {
		log.WithError(err).Error("jws verify failed")
		return nil, err
	}

	claims := &jwtClaims{}
	err = json.Unmarshal(payload, claims)
	if err != nil {
		log.WithError(err).Error("unmarshal failed")
		return nil, err
	}

	if claims.StandardClaims.Issuer != consts.AppName {
		return nil, fmt.Errorf("invalid issuer %s", claims.StandardClaims.Issuer)
	}

	if yes := claims.StandardClaims.VerifyExpiresAt(time.Now().Unix(), true); !yes {
		return nil, fmt.Errorf("token expired")
	}

	return map[string]string{
		"user_id":    claims.StandardClaims.Subject,
		"address":    claims.Address,
		"public_key": claims.PublicKey,
	}, nil
}
