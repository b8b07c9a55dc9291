
package gentests
import _ "embed"
import "testing"
import "github.com/vic/golambda/cmd/gentests/helper"
//go:embed input.yaml
var input string
//go:embed output.txt
var output string
func Test_110_capture_Reduction(t *testing.T) {
	gentests.CheckReduction(t, "110_capture", input, output)
}
