// Package token は署名付きアクセストークンの発行と検証を提供する。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 検証失敗の理由を表すセンチネルエラー。
// ミドルウェアがHTTPレスポンスのエラーコードにマッピングする。
var (
	// ErrTokenMissing はトークンが提示されなかったことを表す。
	ErrTokenMissing = errors.New("token is missing")
	// ErrTokenMalformed はパース不能または署名検証失敗を表す。
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
	// ErrTokenExpired は有効期限切れを表す。
	ErrTokenExpired = errors.New("token is expired")
)

// Claims はアクセストークンのクレームセット。
// subjectにアカウントID、加えてメールアドレスを保持する。
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Identity は検証済みトークンから取り出したアカウントの同一性情報。
type Identity struct {
	AccountID string
	Email     string
}

// Issuer はHS256で署名された自己完結型トークンを発行・検証する。
// 署名鍵はプロセス全体で共有される設定値であり、リクエストごとに導出しない。
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer はIssuerを生成する。ttlは発行時点からの有効期間（24時間を想定）。
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue は指定アカウントのアクセストークンを発行する。
// 有効期限は発行時刻からちょうどttl後。
func (i *Issuer) Issue(accountID, email string) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate はトークンを検証し、アカウントの同一性情報を返す。
// 失敗理由はErrTokenMissing、ErrTokenExpired、ErrTokenMalformedのいずれかに分類される。
// 署名検証に失敗したトークンが部分的にでも受理されることはない。
// 有効期限は現在時刻との厳密比較であり、猶予（leeway）は設けない。
func (i *Issuer) Validate(raw string) (*Identity, error) {
	if raw == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// 署名が正しく期限だけが切れている場合のみExpiredとして区別する
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	return &Identity{
		AccountID: claims.Subject,
		Email:     claims.Email,
	}, nil
}
