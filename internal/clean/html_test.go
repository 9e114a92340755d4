package clean

import "testing"

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Enable the fee switch on v3 pools.",
			want: "Enable the fee switch on v3 pools.",
		},
		{
			name: "tags stripped",
			in:   "<p>Enable the <strong>fee switch</strong> on v3 pools.</p>",
			want: "Enable the fee switch on v3 pools.",
		},
		{
			name: "nested markup and entities",
			in:   "<div><h1>Proposal</h1><ul><li>raise cap &amp; extend</li></ul></div>",
			want: "Proposalraise cap & extend",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  <p> padded </p>  ",
			want: "padded",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTML(tt.in); got != tt.want {
				t.Errorf("HTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
