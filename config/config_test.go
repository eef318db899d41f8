package config

import "testing"

func Test_readEnvBool(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		start bool
		want  bool
	}{
		{"yes", "yes", false, true},
		{"ON", "ON", false, true},
		{"0", "0", true, false},
		{"off", "off", true, false},
		{"garbage keeps default", "maybe", true, true},
		{"empty keeps default", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CATALOG_TEST_BOOL", tt.env)
			got := tt.start
			readEnvBool("CATALOG_TEST_BOOL", &got)
			if got != tt.want {
				t.Errorf("readEnvBool(%q) = %v, want %v", tt.env, got, tt.want)
			}
		})
	}
}

func Test_readEnvInt(t *testing.T) {
	got := 10
	t.Setenv("CATALOG_TEST_INT", "not-a-number")
	readEnvInt("CATALOG_TEST_INT", &got)
	if got != 10 {
		t.Errorf("malformed value changed the default: %d", got)
	}
	t.Setenv("CATALOG_TEST_INT", "42")
	readEnvInt("CATALOG_TEST_INT", &got)
	if got != 42 {
		t.Errorf("readEnvInt() = %d, want 42", got)
	}
}

func Test_readEnvString(t *testing.T) {
	got := "default"
	t.Setenv("CATALOG_TEST_STRING", "")
	readEnvString("CATALOG_TEST_STRING", &got)
	if got != "default" {
		t.Errorf("empty value changed the default: %q", got)
	}
	t.Setenv("CATALOG_TEST_STRING", "s3-bucket")
	readEnvString("CATALOG_TEST_STRING", &got)
	if got != "s3-bucket" {
		t.Errorf("readEnvString() = %q, want s3-bucket", got)
	}
}
