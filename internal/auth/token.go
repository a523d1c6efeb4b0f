package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/employee-management-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims - полезная нагрузка access токена
type Claims struct {
	UserID     int64       `json:"uid"`
	Role       domain.Role `json:"role"`
	EmployeeID *int64      `json:"eid,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer выпускает и проверяет JWT (HS256)
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer создаёт новый экземпляр TokenIssuer
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue подписывает токен для пользователя
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:     user.ID,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        strconv.FormatInt(user.ID, 10) + "-" + strconv.FormatInt(now.UnixNano(), 36),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия токена
func (i *TokenIssuer) Parse(tokenString string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
		}
		return Principal{}, domain.ErrUnauthorized
	}
	if !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return Principal{}, domain.ErrUnauthorized
	}

	return Principal{
		UserID:     claims.UserID,
		Username:   claims.Subject,
		Role:       claims.Role,
		EmployeeID: claims.EmployeeID,
	}, nil
}
