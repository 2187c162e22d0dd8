package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/internal/utils"
)

// Claims is the subset of access token claims the client reads
type Claims struct {
	Subject   string    // Users unique ID or username
	Role      string    // Role claim, possibly ROLE_ prefixed
	Roles     []string  // Roles claim when the backend sends a list
	ExpiresAt time.Time // Expiry
	IssuedAt  time.Time // Issued at time, zero when absent
}

// Validator decides whether a stored access token may be treated as a live
// session. Tokens are decoded without a key; when a key set is configured the
// signature is verified as well.
type Validator struct {
	keySet  oidc.KeySet
	leeway  time.Duration
	nowFunc func() time.Time
}

type Option func(*Validator)

// WithKeySet verifies signatures against the given key set
func WithKeySet(keySet oidc.KeySet) Option {
	return func(v *Validator) {
		v.keySet = keySet
	}
}

// WithRemoteKeySet verifies signatures against a JWKS endpoint. An empty URL is ignored.
func WithRemoteKeySet(ctx context.Context, jwksURL string) Option {
	return func(v *Validator) {
		if jwksURL == "" {
			return
		}
		v.keySet = oidc.NewRemoteKeySet(ctx, jwksURL)
	}
}

func WithLeeway(leeway time.Duration) Option {
	return func(v *Validator) {
		v.leeway = leeway
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(v *Validator) {
		v.nowFunc = now
	}
}

func NewValidator(options ...Option) *Validator {
	v := &Validator{nowFunc: time.Now}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// Decode reads the claims without checking the signature or expiry
func (v *Validator) Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: error extracting claims", apperrors.ErrInvalidToken)
	}

	sub, _ := claims.GetSubject()
	role := utils.ToString(claims["role"])

	var roles []string
	if claimRoles, ok := claims["roles"].([]any); ok {
		roles = utils.ToStringSlice(claimRoles)
	}

	out := &Claims{Subject: sub, Role: role, Roles: roles}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}

// Validate decodes the token, checks that it carries an unexpired exp claim
// and, when a key set is configured, verifies the signature.
func (v *Validator) Validate(ctx context.Context, rawToken string) (*Claims, error) {
	claims, err := v.Decode(rawToken)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("%w: missing exp claim", apperrors.ErrInvalidToken)
	}
	if !claims.ExpiresAt.Add(v.leeway).After(v.nowFunc()) {
		return nil, apperrors.ErrTokenExpired
	}

	if v.keySet != nil {
		if _, err := v.keySet.VerifySignature(ctx, rawToken); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
		}
	}
	return claims, nil
}

// IsTokenValid reports whether the token may be used to restore a session
func (v *Validator) IsTokenValid(ctx context.Context, rawToken string) bool {
	_, err := v.Validate(ctx, rawToken)
	return err == nil
}

// IsExpired reports whether err came from an expired token
func IsExpired(err error) bool {
	return errors.Is(err, apperrors.ErrTokenExpired)
}
