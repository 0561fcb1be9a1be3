package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

var builtinSeeds = []string{
	"",
	`func main() { print("\(1 + 2 * 3)") }`,
	`enum C { case r, g, b } func main(){ var x: C = C.g; switch(x){ C.r -> print("r") C.g -> print("g") C.b -> print("b") } }`,
	`struct P{x:Int} func main(){ var arr:[Int]=[1,2,3]; arr[5] }`,
	`union V = Int | String func main(){ var v:V = V.Int(5); switch(v){ V.Int -> print("\(v)") V.String -> print(v) } }`,
	`func main(){ var d:[String:Int]=["a":1]; print("\(d["b"])") }`,
	"func f() { for (var i: Int = 0; i < 10; i += 1) {} }",
	"func f() -> Int { var s = switch (1) { 1 -> return 2\ndefault -> return 3 }\nreturn s }",
	`func f() { print("\("\(1)")") }`,
	"func f() { { { { } } } }",
	"var 1 +\nfunc g() {}",
	"func f( { var x = [:]",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addScenarioSeeds(f)
}

// addScenarioSeeds reuses the interpreter's scenario programs as corpus.
func addScenarioSeeds(f *testing.F) {
	path := filepath.Join("..", "interp", "testdata", "scenarios.yaml")
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var scenarios []struct {
		Source string `yaml:"source"`
	}
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return
	}
	for _, sc := range scenarios {
		f.Add(clampSeed([]byte(sc.Source)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func truncateForLog(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	return data[:limit]
}
