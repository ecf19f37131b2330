package decoder

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestDecodePathSingleToken(t *testing.T) {
	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	got := decodePath(a.Bytes())
	if len(got) != 1 || got[0] != a {
		t.Fatalf("decodePath(single) = %v, want [%v]", got, a)
	}
}

func TestDecodePathMultiHop(t *testing.T) {
	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	b := common.HexToAddress("0x2222222222222222222222222222222222222222")
	c := common.HexToAddress("0x3333333333333333333333333333333333333333")

	path := packPath(a, b, c)
	got := decodePath(path)

	want := []common.Address{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("decodePath length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodePathTooShort(t *testing.T) {
	if got := decodePath([]byte{1, 2, 3}); got != nil {
		t.Fatalf("decodePath(short) = %v, want nil", got)
	}
}

func TestDecodePathTruncatesMalformedTail(t *testing.T) {
	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	b := common.HexToAddress("0x2222222222222222222222222222222222222222")

	path := packPath(a, b)
	path = append(path, 0x01, 0x02) // malformed trailing bytes, not a full hop

	got := decodePath(path)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("decodePath(malformed tail) = %v, want [%v %v]", got, a, b)
	}
}
