package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL 令牌有效期：7 天
const DefaultTTL = 7 * 24 * time.Hour

var ErrMissingSecret = errors.New("auth: missing jwt secret")

type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity 令牌主体
type Identity struct {
	ID    string
	Email string
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration

	now func() time.Time
}

// New 启动时构造；secret 为空直接返回错误（由调用方 Fatal）
func New(secret, issuer string, ttl time.Duration) (*JWTer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTer{Secret: []byte(secret), Issuer: issuer, TTL: ttl}, nil
}

func (j *JWTer) clock() time.Time {
	if j.now != nil {
		return j.now()
	}
	return time.Now()
}

func (j *JWTer) Issue(id, email string) (string, error) {
	now := j.clock()
	claims := Claims{
		ID:    id,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(j.clock), jwt.WithExpirationRequired()}
	if j.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.Issuer))
	}
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, opts...)

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid && c.ID != "" {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// Verify 任何校验失败（过期/格式/签名）都返回 nil，调用方按“未登录”处理
func (j *JWTer) Verify(tokenStr string) *Identity {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return nil
	}
	return &Identity{ID: c.ID, Email: c.Email}
}
