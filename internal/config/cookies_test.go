package config

import (
	"testing"
)

func TestParseCookies_DictFormat(t *testing.T) {
	dictFormat := `{
  "__Secure-1PSID": "test_psid_value",
  "__Secure-1PSIDTS": "test_psidts_value"
}`

	cookies, err := ParseCookies([]byte(dictFormat))
	if err != nil {
		t.Fatalf("ParseCookies() with dict format returned error: %v", err)
	}

	if cookies.Secure1PSID != "test_psid_value" {
		t.Errorf("Expected Secure1PSID 'test_psid_value', got '%s'", cookies.Secure1PSID)
	}

	if cookies.Secure1PSIDTS != "test_psidts_value" {
		t.Errorf("Expected Secure1PSIDTS 'test_psidts_value', got '%s'", cookies.Secure1PSIDTS)
	}
}

func TestParseCookies_DictFormat_MissingPSID(t *testing.T) {
	dictFormat := `{
  "__Secure-1PSIDTS": "test_psidts_value"
}`

	if _, err := ParseCookies([]byte(dictFormat)); err == nil {
		t.Error("ParseCookies() with missing PSID should return error")
	}
}

func TestParseCookies_ListFormat(t *testing.T) {
	listFormat := `[
  {"name": "__Secure-1PSID", "value": "psid_from_list"},
  {"name": "__Secure-1PSIDTS", "value": "psidts_from_list"},
  {"name": "NID", "value": "extra_cookie"}
]`

	cookies, err := ParseCookies([]byte(listFormat))
	if err != nil {
		t.Fatalf("ParseCookies() with list format returned error: %v", err)
	}

	if cookies.Secure1PSID != "psid_from_list" {
		t.Errorf("Expected Secure1PSID 'psid_from_list', got '%s'", cookies.Secure1PSID)
	}
	if cookies.Extra["NID"] != "extra_cookie" {
		t.Errorf("Expected extra cookie NID to be preserved, got %v", cookies.Extra)
	}
}

func TestParseCookies_InvalidFormat(t *testing.T) {
	if _, err := ParseCookies([]byte(`"just a string"`)); err == nil {
		t.Error("ParseCookies() with invalid format should return error")
	}
}

func TestCookiesMap(t *testing.T) {
	cookies := &Cookies{
		Secure1PSID:   "psid",
		Secure1PSIDTS: "psidts",
		Extra:         map[string]string{"NID": "nid"},
	}

	m := cookies.Map()
	if m["__Secure-1PSID"] != "psid" || m["__Secure-1PSIDTS"] != "psidts" || m["NID"] != "nid" {
		t.Errorf("Map() = %v", m)
	}

	cookies.Secure1PSIDTS = ""
	if _, ok := cookies.Map()["__Secure-1PSIDTS"]; ok {
		t.Error("Map() should omit an empty PSIDTS")
	}
}

func TestUpdate1PSIDTS(t *testing.T) {
	cookies := &Cookies{Secure1PSID: "psid", Secure1PSIDTS: "old"}
	cookies.Update1PSIDTS("new")
	if got := cookies.GetSecure1PSIDTS(); got != "new" {
		t.Errorf("GetSecure1PSIDTS() = %q, want 'new'", got)
	}
}

func TestValidateCookies(t *testing.T) {
	if err := ValidateCookies(nil); err == nil {
		t.Error("ValidateCookies(nil) should return error")
	}
	if err := ValidateCookies(&Cookies{}); err == nil {
		t.Error("ValidateCookies() without PSID should return error")
	}
	if err := ValidateCookies(&Cookies{Secure1PSID: "psid"}); err != nil {
		t.Errorf("ValidateCookies() with PSID returned error: %v", err)
	}
}
