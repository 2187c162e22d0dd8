package apierror

import (
	"regexp"
	"strings"
)

// Rule maps a backend message to a friendlier user message. Match receives the
// lower-cased message; Message receives the original.
type Rule struct {
	Match   func(lower string) bool
	Message func(original string) string
}

// apply returns the message of the first matching rule
func apply(rules []Rule, msg string) (string, bool) {
	lower := strings.ToLower(msg)
	for _, r := range rules {
		if r.Match(lower) {
			return r.Message(msg), true
		}
	}
	return "", false
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func containsAll(matchers ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, m := range matchers {
			if !m(s) {
				return false
			}
		}
		return true
	}
}

func fixed(msg string) func(string) string {
	return func(string) string { return msg }
}

var remainingAttempts = regexp.MustCompile(`Tentatives restantes\s*:\s*(\d+)`)

func invalidCredentials(msg string) string {
	if m := remainingAttempts.FindStringSubmatch(msg); m != nil {
		return "Email ou mot de passe incorrect. Tentatives restantes: " + m[1]
	}
	if strings.Contains(msg, "Tentatives restantes") {
		return "Email ou mot de passe incorrect. Tentatives restantes: ?"
	}
	return "Email ou mot de passe incorrect."
}

const (
	msgAccountLocked  = "Votre compte est bloqué. Contactez l'administrateur."
	msgSessionExpired = "Session expirée. Veuillez vous reconnecter."
)

// AuthRules apply to 401 messages, in order. The phrases are those of the
// French backend; other phrasings fall through to the generic message.
var AuthRules = []Rule{
	{Match: containsAny("email ou mot de passe incorrect"), Message: invalidCredentials},
	{Match: containsAny("compte bloqué"), Message: fixed(msgAccountLocked)},
	{Match: containsAny("expir"), Message: fixed("Votre session a expiré. Veuillez vous reconnecter.")},
	{Match: containsAny("bloqué", "blocked"), Message: fixed(msgAccountLocked)},
	{Match: containsAny("invalid", "incorrect", "wrong"), Message: fixed("Identifiants incorrects. Vérifiez votre email et mot de passe.")},
	{Match: containsAny("not found", "non trouvé"), Message: fixed("Utilisateur non trouvé. Vérifiez votre email.")},
	{Match: containsAny("disabled", "désactivé"), Message: fixed("Compte désactivé. Contactez l'administrateur.")},
}

// ConflictRules apply to 409 messages, in order
var ConflictRules = []Rule{
	{
		Match:   containsAll(containsAny("inscription"), containsAny("active")),
		Message: fixed("Impossible: une inscription active existe déjà pour cet étudiant."),
	},
	{
		Match:   containsAll(containsAny("email"), containsAny("exist", "déjà")),
		Message: fixed("Cette adresse email est déjà utilisée par un autre compte."),
	},
	{
		Match:   containsAll(containsAny("matricule"), containsAny("exist", "déjà")),
		Message: fixed("Ce matricule est déjà enregistré dans le système."),
	},
	{Match: containsAny("duplicate", "dupliqué"), Message: fixed("Données dupliquées. Vérifiez vos informations.")},
}

// ValidationRules apply to 400 and 422 messages when the body carries no
// field errors, in order
var ValidationRules = []Rule{
	{Match: containsAny("required", "requis"), Message: fixed("Ce champ est obligatoire.")},
	{Match: containsAny("invalid", "invalide"), Message: fixed("Format invalide. Vérifiez vos données.")},
	{Match: containsAny("length", "longueur"), Message: fixed("Longueur invalide. Vérifiez la taille de vos données.")},
	{Match: containsAny("format"), Message: fixed("Format incorrect. Suivez les instructions.")},
}
