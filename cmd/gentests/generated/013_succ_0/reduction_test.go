
package gentests
import _ "embed"
import "testing"
import "github.com/vic/golambda/cmd/gentests/helper"
//go:embed input.yaml
var input string
//go:embed output.txt
var output string
func Test_013_succ_0_Reduction(t *testing.T) {
	gentests.CheckReduction(t, "013_succ_0", input, output)
}
