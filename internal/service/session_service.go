package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

const sessionIssuer = "scholarhub-api"

// SessionConfig configures session token signing.
type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	DemoStudentID int
}

type studentLookup interface {
	Get(ctx context.Context, id int) (*models.Student, error)
}

// SessionService issues and validates the tokens naming the current student. There is no
// password: a session only selects whose data the portal shows.
type SessionService struct {
	students  studentLookup
	config    SessionConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs the session service.
func NewSessionService(students studentLookup, cfg SessionConfig, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	if cfg.DemoStudentID <= 0 {
		cfg.DemoStudentID = 1
	}
	return &SessionService{students: students, config: cfg, validator: validate, logger: logger, now: time.Now}
}

// DemoStudentID is the student used when a request carries no session.
func (s *SessionService) DemoStudentID() int {
	return s.config.DemoStudentID
}

// Open issues a token for an existing student.
func (s *SessionService) Open(ctx context.Context, req models.SessionRequest) (*models.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid session payload")
	}
	student, err := s.students.Get(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.TTL)
	claims := &models.SessionClaims{
		StudentID: student.ID,
		Name:      student.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.Itoa(student.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session")
	}
	s.logger.Info("session opened", zap.Int("student_id", student.ID))
	return &models.SessionResponse{Token: signed, StudentID: student.ID, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and validates a session token returning the claims.
func (s *SessionService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.StudentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}
	return claims, nil
}
