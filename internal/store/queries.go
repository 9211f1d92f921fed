package store

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/MKhiriev/crm-gateway/models"
)

// Upstream API names of the credential module fields.
const (
	fieldID                = "id"
	fieldEmail             = "Email"
	fieldPassword          = "Password_Intranet"
	fieldCustomPasswordSet = "Contrasena_Personalizada_Establecida"
	fieldActive            = "Activo"
	fieldResetToken        = "Password_Reset_Token"
	fieldResetTokenExpiry  = "Password_Reset_Token_Expiry"
)

const (
	coqlPath          = "/coql"
	updateSuccessCode = "SUCCESS"

	// crmDateTime is the datetime layout the CRM accepts on writes.
	crmDateTime = "2006-01-02T15:04:05-07:00"
)

var (
	verifyFields = []string{fieldID, fieldEmail, fieldPassword, fieldCustomPasswordSet, fieldActive}
	lookupFields = []string{fieldID, fieldEmail, fieldCustomPasswordSet, fieldActive}
	resetFields  = []string{fieldID, fieldEmail, fieldActive, fieldResetToken, fieldResetTokenExpiry}
	idOnlyFields = []string{fieldID}
)

var recordIDPattern = regexp.MustCompile(`^[0-9]{1,32}$`)

// crmRecord is one row of a query answer. Absent and null fields stay nil.
type crmRecord struct {
	ID                string  `json:"id"`
	Email             *string `json:"Email"`
	PasswordHash      *string `json:"Password_Intranet"`
	CustomPasswordSet *bool   `json:"Contrasena_Personalizada_Establecida"`
	Active            *bool   `json:"Activo"`
	ResetToken        *string `json:"Password_Reset_Token"`
	ResetTokenExpiry  *string `json:"Password_Reset_Token_Expiry"`
}

type queryResponse struct {
	Data []crmRecord `json:"data"`
}

type updateResult struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type updateResponse struct {
	Data []updateResult `json:"data"`
}

type updateRequest struct {
	Data []map[string]any `json:"data"`
}

type queryRequest struct {
	SelectQuery string `json:"select_query"`
}

func (r crmRecord) toCredential() models.Credential {
	c := models.Credential{
		ID:     r.ID,
		Email:  deref(r.Email),
		Active: r.Active,
	}
	c.PasswordHash = deref(r.PasswordHash)
	if r.CustomPasswordSet != nil {
		c.CustomPasswordSet = *r.CustomPasswordSet
	}
	c.ResetToken = deref(r.ResetToken)
	if expiry, ok := parseCRMDateTime(deref(r.ResetTokenExpiry)); ok {
		c.ResetTokenExpiry = &expiry
	}
	return c
}

func parseCRMDateTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decodeQuery(raw json.RawMessage) ([]crmRecord, error) {
	var resp queryResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
