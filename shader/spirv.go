package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/wgsl"
)

// spirvMagic is the SPIR-V module magic number (first word).
const spirvMagic = 0x07230203

// CompileSPIRV produces the legacy intermediate-representation form of
// the quad shader: the generated WGSL compiled to SPIR-V words.
func CompileSPIRV(caps Caps) ([]uint32, error) {
	spirvBytes, err := naga.Compile(WGSL(caps))
	if err != nil {
		return nil, fmt.Errorf("compile quad shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V output not word-aligned: %d bytes", len(spirvBytes))
	}
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	if len(spirvCode) == 0 || spirvCode[0] != spirvMagic {
		return nil, fmt.Errorf("SPIR-V output missing magic number")
	}

	return spirvCode, nil
}

// ValidateWGSL parses and lowers WGSL source through the naga frontend,
// returning the first error encountered. Used by tests to reject
// generator output that merely looks like WGSL.
func ValidateWGSL(source string) error {
	lexer := wgsl.NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	parser := wgsl.NewParser(tokens)
	ast, err := parser.Parse()
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if _, err := wgsl.Lower(ast); err != nil {
		return fmt.Errorf("lower: %w", err)
	}
	return nil
}
