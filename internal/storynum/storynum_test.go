package storynum

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		n      int
		want   string
	}{
		{name: "first number", prefix: "T&D", n: 1001, want: "T&D-1001"},
		{name: "pads to four digits", prefix: "ADMS", n: 7, want: "ADMS-0007"},
		{name: "does not truncate five digits", prefix: "OPS", n: 10234, want: "OPS-10234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.prefix, tt.n)
			if got != tt.want {
				t.Errorf("Format(%q, %d) = %q, want %q", tt.prefix, tt.n, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		want    int
		wantErr bool
	}{
		{name: "plain", number: "ADMS-1002", want: 1002},
		{name: "prefix with dash", number: "T&D-X-1010", want: 1010},
		{name: "no dash", number: "ADMS1002", wantErr: true},
		{name: "non numeric suffix", number: "ADMS-abc", wantErr: true},
		{name: "trailing dash", number: "ADMS-", wantErr: true},
		{name: "empty", number: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.number)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %d, want error", tt.number, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.number, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.number, got, tt.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		want     string
	}{
		{
			name:   "empty project starts at 1001",
			prefix: "T&D",
			want:   "T&D-1001",
		},
		{
			name:     "continues from max",
			prefix:   "T&D",
			existing: []string{"T&D-1001", "T&D-1005", "T&D-1003"},
			want:     "T&D-1006",
		},
		{
			name:     "skips malformed numbers",
			prefix:   "ADMS",
			existing: []string{"ADMS-1001", "garbage", "ADMS-", "ADMS-abc"},
			want:     "ADMS-1002",
		},
		{
			name:     "all malformed falls back to seed",
			prefix:   "ADMS",
			existing: []string{"nope", "also-bad-"},
			want:     "ADMS-1001",
		},
		{
			name:     "ignores gaps from deletion",
			prefix:   "OPS",
			existing: []string{"OPS-1004"},
			want:     "OPS-1005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.prefix, tt.existing)
			if got != tt.want {
				t.Errorf("Next(%q, %v) = %q, want %q", tt.prefix, tt.existing, got, tt.want)
			}
		})
	}
}

func TestNextIsStrictlyIncreasing(t *testing.T) {
	var existing []string
	prev := Seed
	for i := 0; i < 20; i++ {
		number := Next("T&D", existing)
		n, err := Parse(number)
		if err != nil {
			t.Fatalf("Next produced malformed number %q: %v", number, err)
		}
		if n != prev+1 {
			t.Fatalf("sequence jumped from %d to %d", prev, n)
		}
		prev = n
		existing = append(existing, number)
	}
}
