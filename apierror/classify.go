package apierror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/internal/utils"
)

const (
	maxEchoedMessage = 150

	msgUnknown       = "Une erreur inattendue s'est produite. Veuillez réessayer."
	msgMalformed     = "Le serveur a renvoyé une réponse inattendue. Il est peut-être mal configuré, contactez le support."
	msgNetwork       = "Problème de connexion réseau. Vérifiez votre connexion internet et réessayez."
	msgAuthGeneric   = "Erreur d'authentification. Vérifiez vos identifiants."
	msgConflict      = "Conflit de données détecté. Vérifiez vos informations."
	msgValidation    = "Veuillez vérifier vos données et réessayer."
	msgBadRequest    = "Données invalides. Vérifiez vos informations."
	msgUnprocessable = "Données incorrectes. Vérifiez le format."

	msgNotAuthenticated = "Vous n'êtes pas connecté. Veuillez vous connecter."
)

// Classify maps any value to ErrorDetails. It is total: every input, nil
// included, yields a well-formed value with a non-empty UserMessage.
func Classify(v any) ErrorDetails {
	switch t := v.(type) {
	case ErrorDetails:
		return t
	case *ErrorDetails:
		if t != nil {
			return *t
		}
		return unknown("nil error details", nil)
	case *HTTPError:
		if t != nil {
			return classifyHTTP(t, t)
		}
		return unknown("nil http error", nil)
	case string:
		if looksLikeMarkup(t) {
			return malformed(0, "HTML", nil)
		}
		return unknown(t, nil)
	case error:
		return classifyError(t)
	case nil:
		return unknown("Erreur inconnue", nil)
	default:
		return unknown(fmt.Sprint(t), nil)
	}
}

func classifyError(err error) ErrorDetails {
	var details ErrorDetails
	if errors.As(err, &details) {
		return details
	}
	var detailsPtr *ErrorDetails
	if errors.As(err, &detailsPtr) && detailsPtr != nil {
		return *detailsPtr
	}

	// A failed refresh tears the session down whatever the underlying cause
	if errors.Is(err, apperrors.ErrRefreshFailed) || errors.Is(err, apperrors.ErrNoRefreshToken) {
		d := ErrorDetails{
			Code:        CodeSessionExpired,
			Message:     err.Error(),
			UserMessage: msgSessionExpired,
			Severity:    SeverityHigh,
			Category:    CategoryAuthorization,
			Cause:       err,
		}
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			d.StatusCode = utils.Ptr(httpErr.StatusCode)
		}
		return d
	}

	if errors.Is(err, apperrors.ErrNotAuthenticated) {
		return ErrorDetails{
			Code:        CodeUnauthorized,
			Message:     err.Error(),
			UserMessage: msgNotAuthenticated,
			Severity:    SeverityHigh,
			Category:    CategoryAuthorization,
			Cause:       err,
		}
	}

	if errors.Is(err, apperrors.ErrValidation) {
		msg := strings.TrimSpace(strings.TrimPrefix(err.Error(), apperrors.ErrValidation.Error()+": "))
		if msg == "" || msg == apperrors.ErrValidation.Error() {
			msg = msgValidation
		}
		return ErrorDetails{
			Code:        CodeValidation,
			Message:     "Erreur de validation des données",
			UserMessage: msg,
			Severity:    SeverityMedium,
			Category:    CategoryValidation,
			Cause:       err,
		}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return classifyHTTP(httpErr, err)
	}

	if isTransport(err) {
		return network(err)
	}
	return unknown(err.Error(), err)
}

func isTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func classifyHTTP(e *HTTPError, cause error) ErrorDetails {
	if e.StatusCode == 0 {
		return network(cause)
	}

	kind, body, text := e.decodeBody()
	switch kind {
	case bodyMarkup:
		return malformed(e.StatusCode, "HTML", cause)
	case bodyText:
		switch e.StatusCode {
		case 400, 401, 409, 422:
			body = payload{Message: text}
		default:
			return malformed(e.StatusCode, "texte", cause)
		}
	}

	d := ErrorDetails{
		Severity:   SeverityMedium,
		Category:   CategoryServer,
		StatusCode: utils.Ptr(e.StatusCode),
		Cause:      cause,
	}

	switch e.StatusCode {
	case 400:
		d.Code, d.Message, d.Category = CodeValidation, "Données invalides", CategoryValidation
		d.UserMessage = validationMessage(body, msgBadRequest)
	case 422:
		d.Code, d.Message, d.Category = CodeValidation, "Données non traitables", CategoryValidation
		d.UserMessage = validationMessage(body, msgUnprocessable)
	case 401:
		d.Code, d.Message, d.Category, d.Severity = CodeUnauthorized, "Non autorisé", CategoryAuthorization, SeverityHigh
		d.UserMessage = authMessage(body.Message)
	case 403:
		d.Code, d.Message, d.Category, d.Severity = CodeForbidden, "Accès refusé", CategoryAuthorization, SeverityHigh
		d.UserMessage = "Vous n'avez pas les permissions nécessaires pour cette action."
	case 404:
		d.Code, d.Message, d.Category = CodeNotFound, "Ressource non trouvée", CategoryClient
		d.UserMessage = "La ressource demandée n'existe pas ou a été supprimée."
	case 409:
		d.Code, d.Message, d.Category = CodeConflict, "Conflit de données", CategoryValidation
		d.UserMessage = conflictMessage(body.Message)
	case 429:
		d.Code, d.Message, d.Category, d.Retryable = CodeRateLimit, "Trop de requêtes", CategoryClient, true
		d.UserMessage = "Trop de requêtes. Veuillez patienter 1 minute avant de réessayer."
	case 500:
		d.Code, d.Message, d.Severity = CodeServer, "Erreur serveur interne", SeverityHigh
		d.UserMessage = "Erreur serveur. Notre équipe technique a été notifiée. Réessayez dans quelques instants."
	case 502, 503, 504:
		d.Code, d.Message, d.Retryable = CodeServerUnavailable, "Serveur indisponible", true
		d.UserMessage = "Service temporairement indisponible. Veuillez réessayer dans quelques minutes."
	default:
		d.Code = fmt.Sprintf("HTTP_%d", e.StatusCode)
		d.Message = fmt.Sprintf("Erreur HTTP %d", e.StatusCode)
		d.UserMessage = fmt.Sprintf("Erreur %d. Si le problème persiste, contactez le support.", e.StatusCode)
		if e.StatusCode >= 500 {
			d.Severity = SeverityHigh
		} else {
			d.Category = CategoryClient
		}
	}
	return d
}

// validationMessage prefers structured field errors, then the errors array,
// then a rule on the message.
func validationMessage(p payload, fallback string) string {
	if msgs := p.fieldErrorsList(); len(msgs) > 0 {
		return strings.Join(msgs, ", ")
	}
	if msgs := p.errorsList(); len(msgs) > 0 {
		return strings.Join(msgs, ", ")
	}
	msg := strings.TrimSpace(p.Message)
	if msg == "" {
		return fallback
	}
	if friendly, ok := apply(ValidationRules, msg); ok {
		return friendly
	}
	return msg
}

func authMessage(msg string) string {
	msg = strings.TrimSpace(strings.ReplaceAll(msg, `"`, ""))
	if msg == "" {
		return msgAuthGeneric
	}
	if friendly, ok := apply(AuthRules, msg); ok {
		return friendly
	}
	if len([]rune(msg)) < maxEchoedMessage {
		return msg
	}
	return msgAuthGeneric
}

func conflictMessage(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msgConflict
	}
	if friendly, ok := apply(ConflictRules, msg); ok {
		return friendly
	}
	return "Conflit: " + msg
}

func network(cause error) ErrorDetails {
	return ErrorDetails{
		Code:        CodeNetwork,
		Message:     "Connexion perdue",
		UserMessage: msgNetwork,
		Severity:    SeverityMedium,
		Category:    CategoryNetwork,
		Retryable:   true,
		StatusCode:  utils.Ptr(0),
		Cause:       cause,
	}
}

func malformed(statusCode int, format string, cause error) ErrorDetails {
	d := ErrorDetails{
		Code:        CodeMalformedResponse,
		Message:     fmt.Sprintf("Réponse %s inattendue du serveur", format),
		UserMessage: msgMalformed,
		Severity:    SeverityHigh,
		Category:    CategoryServer,
		Cause:       cause,
	}
	if statusCode != 0 {
		d.StatusCode = utils.Ptr(statusCode)
	}
	return d
}

func unknown(msg string, cause error) ErrorDetails {
	if msg == "" {
		msg = "Erreur inconnue"
	}
	return ErrorDetails{
		Code:        CodeUnknown,
		Message:     msg,
		UserMessage: msgUnknown,
		Severity:    SeverityMedium,
		Category:    CategoryUnknown,
		Retryable:   true,
		Cause:       cause,
	}
}

// IsRetryable classifies err and reports whether retrying may succeed
func IsRetryable(err any) bool {
	return Classify(err).Retryable
}

// UserMessage classifies err and returns its user-facing message
func UserMessage(err any) string {
	return Classify(err).UserMessage
}
