package errors

import "testing"

func TestValidateBlockName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "Valid", input: "Cube.001"},
		{name: "Empty", input: "", wantErr: true},
		{name: "Traversal", input: "../etc/passwd", wantErr: true},
		{name: "DoubleSlash", input: "a//b", wantErr: true},
		{name: "ControlChar", input: "bad\x01name", wantErr: true},
		{name: "Backslash", input: "bad\\name", wantErr: true},
		{name: "TooLong", input: string(make([]byte, 300)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBlockName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBlockName(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidManifest) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidManifest)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "Valid", input: "out/graph.svg"},
		{name: "Empty", input: "", wantErr: true},
		{name: "NullByte", input: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
