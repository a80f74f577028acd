package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Augustnerdaal/REALestate/internal/report"
	"github.com/Augustnerdaal/REALestate/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

// ShareLink is a signed read-only token for a project report
type ShareLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ShareLink issues a token that grants read access to one project's report
func (s *Service) ShareLink(projectID string) (*ShareLink, error) {
	p, err := s.repo.FindProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.config.ShareTTL).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   p.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	tokenString, err := token.SignedString([]byte(s.config.ShareSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Share link issued for project %s", p.ID)
	return &ShareLink{Token: tokenString, ExpiresAt: expiresAt}, nil
}

// ResolveShare validates a share token and renders the HTML report
func (s *Service) ResolveShare(tokenString string) (*report.Document, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.ShareSecret), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		s.log.Debugf("Rejected share token: %v", err)
		return nil, ErrInvalidShareToken
	}

	p, err := s.repo.FindProjectByID(claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrInvalidShareToken
		}
		return nil, err
	}
	return s.renderProject(p, report.FormatHTML)
}
