// Package auth implements the token layer: minting signed access tokens,
// validating bearer tokens on incoming requests, refreshing them, and
// best-effort revocation on logout.  Tokens are stateless HS256 JWTs, so a
// signed token stays cryptographically valid until its natural expiry;
// Invalidate narrows that gap by recording the token id in a deny-list
// that Validate consults.  Without a deny-list backend, logout is a
// client-side signal only.
package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenMissing is returned when no token was supplied at all.
	ErrTokenMissing = errors.New("authorization token not found")
	// ErrTokenInvalid is returned for malformed tokens, bad signatures and
	// unexpected signing methods.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired is returned when the signature checks out but the
	// token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenRevoked is returned when the token id is on the deny-list.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// refreshGrace is how far past expiry a token is still accepted by Refresh.
// Signature or format errors are never forgiven.
const refreshGrace = 60 * time.Second

// Claims carries the identity bound into an access token.  The registered
// ID claim (jti) keys the deny-list; Subject duplicates UserID as a string
// for interoperability with generic JWT tooling.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"uid"`
}

// Token is a freshly minted access token together with its expiry.
type Token struct {
	Value     string    // the serialized JWT string
	ExpiresAt time.Time // the UTC expiration time
}

// Identity is the authenticated requester, resolved by the gatekeeper from
// the token subject and the users table, and threaded through request
// context into handlers and policy checks.
type Identity struct {
	UserID uint64
	Name   string
	Email  string
}

// Issuer mints and validates access tokens.  The deny-list may be nil, in
// which case revocation is skipped entirely.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	deny   Denylist
}

// NewIssuer builds an Issuer from the signing secret, the access token TTL
// and an optional deny-list.
func NewIssuer(secret string, ttl time.Duration, deny Denylist) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, deny: deny}
}

// TTL reports the configured access token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue mints a signed HS256 token for the user with a fresh jti and the
// configured TTL.  It has no side effect on persisted state.
func (i *Issuer) Issue(userID uint64) (Token, error) {
	now := time.Now().UTC()
	exp := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: userID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Validate verifies signature and expiry, then checks the deny-list.
// It fails with ErrTokenMissing, ErrTokenExpired, ErrTokenRevoked or
// ErrTokenInvalid; it never hits the database.
func (i *Issuer) Validate(ctx context.Context, raw string) (*Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrTokenMissing
	}
	claims, err := i.parse(raw)
	if err != nil {
		return nil, err
	}
	if i.deny != nil && i.deny.IsRevoked(ctx, claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Refresh exchanges a token for a new one with a fresh expiry.  The old
// token may be expired by at most refreshGrace; it is deny-listed so the
// exchange also acts as a rotation.
func (i *Issuer) Refresh(ctx context.Context, raw string) (Token, error) {
	if strings.TrimSpace(raw) == "" {
		return Token{}, ErrTokenMissing
	}
	claims, err := i.parse(raw, jwt.WithLeeway(refreshGrace))
	if err != nil {
		return Token{}, err
	}
	if i.deny != nil {
		if i.deny.IsRevoked(ctx, claims.ID) {
			return Token{}, ErrTokenRevoked
		}
		i.deny.Revoke(ctx, claims.ID, claims.ExpiresAt.Time.Add(refreshGrace))
	}
	return i.Issue(claims.UserID)
}

// Invalidate is logical logout: the token id goes on the deny-list with a
// lifetime equal to the token's remaining validity.  An already expired or
// malformed token needs no revocation and is not an error here.
func (i *Issuer) Invalidate(ctx context.Context, raw string) {
	if i.deny == nil || strings.TrimSpace(raw) == "" {
		return
	}
	claims, err := i.parse(raw)
	if err != nil {
		return
	}
	i.deny.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// parse runs signature and claim validation and maps library errors onto
// this package's sentinel values.  Expiry is reported as ErrTokenExpired
// even when other claim checks also failed, so callers can distinguish a
// stale token from a forged one.
func (i *Issuer) parse(raw string, opts ...jwt.ParserOption) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
