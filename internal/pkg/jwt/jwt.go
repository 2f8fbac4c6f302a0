package jwt

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimStoreID = "store_id"
	ClaimType    = "type"
	TypeAccess   = "access"
)

type Service interface {
	GenerateAccessToken(subject string, storeID int64) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt int64)
	IsTokenRevoked(tokenID string) bool
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) *JWTService {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(subject string, storeID int64) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		jwt.SubjectKey:    subject,
		jwt.JwtIDKey:      uuid.NewString(),
		ClaimStoreID:      storeID,
		ClaimType:         TypeAccess,
		jwt.ExpirationKey: expiresAt,
	})
	return tokenString, expiresAt, err
}

// RevokeToken blocks tokenID until expiresAt. Entries past their expiry are
// dropped on each call since the token would be rejected anyway.
func (j *JWTService) RevokeToken(tokenID string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.pruneLocked()
	j.revokedTokens[tokenID] = expiresAt
}

// PruneRevokedTokens drops expired revocations and reports how many went.
func (j *JWTService) PruneRevokedTokens() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pruneLocked()
}

func (j *JWTService) pruneLocked() int {
	now := j.now().Unix()
	pruned := 0
	for id, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, id)
			pruned++
		}
	}
	return pruned
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}

// ClaimInt64 reads an integer claim. Claims decoded from a token arrive as
// float64 or json.Number, claims set in-process may still be ints or strings.
func ClaimInt64(claims map[string]interface{}, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
