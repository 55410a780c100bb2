package credential

import (
	"errors"
	"fmt"
	"strings"
)

// Keys under which the mirror connection parameters are stored.
const (
	KeyFirebaseAPIKey    = "firebase-api-key"
	KeyFirebaseProjectID = "firebase-project-id"
	KeyFirebaseAppID     = "firebase-app-id"
)

// Firebase holds the three opaque strings needed to reach the mirror.
type Firebase struct {
	APIKey    string
	ProjectID string
	AppID     string
}

// Complete reports whether all three parameters are set.
func (f Firebase) Complete() bool {
	return strings.TrimSpace(f.APIKey) != "" &&
		strings.TrimSpace(f.ProjectID) != "" &&
		strings.TrimSpace(f.AppID) != ""
}

// LoadFirebase reads the mirror parameters from v. It returns ErrMissing
// if any of them has never been stored.
func LoadFirebase(v Vault) (Firebase, error) {
	var f Firebase
	fields := []struct {
		key    string
		target *string
	}{
		{KeyFirebaseAPIKey, &f.APIKey},
		{KeyFirebaseProjectID, &f.ProjectID},
		{KeyFirebaseAppID, &f.AppID},
	}
	for _, field := range fields {
		val, err := v.Get(field.key)
		if err != nil {
			return Firebase{}, err
		}
		*field.target = val
	}
	if !f.Complete() {
		return Firebase{}, fmt.Errorf("loading firebase credentials: %w", ErrMissing)
	}
	return f, nil
}

// SaveFirebase trims and stores all three parameters.
func SaveFirebase(v Vault, f Firebase) error {
	if !f.Complete() {
		return errors.New("all three firebase parameters are required")
	}
	pairs := [][2]string{
		{KeyFirebaseAPIKey, strings.TrimSpace(f.APIKey)},
		{KeyFirebaseProjectID, strings.TrimSpace(f.ProjectID)},
		{KeyFirebaseAppID, strings.TrimSpace(f.AppID)},
	}
	for _, p := range pairs {
		if err := v.Set(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

// ForgetFirebase removes all three parameters.
func ForgetFirebase(v Vault) error {
	for _, key := range []string{KeyFirebaseAPIKey, KeyFirebaseProjectID, KeyFirebaseAppID} {
		if err := v.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
