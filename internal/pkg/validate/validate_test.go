package validate

import "testing"

func TestRequired(t *testing.T) {
	if Required("  ") {
		t.Fatalf("blank string passed Required")
	}
	if !Required("x") {
		t.Fatalf("non-blank string failed Required")
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"ana@example.com", "a.b+c@sub.domain.org"}
	for _, v := range valid {
		if !Email(v) {
			t.Fatalf("%q rejected", v)
		}
	}
	invalid := []string{"", "ana", "ana@", "@example.com", "ana@example", "a b@example.com"}
	for _, v := range invalid {
		if Email(v) {
			t.Fatalf("%q accepted", v)
		}
	}
}

func TestCPFDigits(t *testing.T) {
	digits, ok := CPFDigits("123.456.789-01")
	if !ok || digits != "12345678901" {
		t.Fatalf("formatted cpf rejected: %q %v", digits, ok)
	}
	if _, ok := CPFDigits("123456789"); ok {
		t.Fatalf("short cpf accepted")
	}
	if _, ok := CPFDigits("1234567890a"); ok {
		t.Fatalf("non-numeric cpf accepted")
	}
}
