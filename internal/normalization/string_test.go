package normalization

import "testing"

func TestParseUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Alice ", "alice"},
		{"bob_42", "bob_42"},
		{"carol-x!", "carol-x"},
		{"d@ve<script>", "davescript"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := ParseUsername(tc.in); got != tc.want {
			t.Fatalf("ParseUsername(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
