package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"

	"github.com/spacemeshos/cipherlab/alphabet"
	"github.com/spacemeshos/cipherlab/bruteforce"
	"github.com/spacemeshos/cipherlab/vigenere"
)

const plaintext = "The giant is awake, the window is open. "

type testCase struct {
	workers int
	keyLen  int
}

func main() {
	keyLen := flag.Int("keyLen", 2, "longest enumerated key length")
	single := flag.Bool("single", false, "whether to execute a single test instead of the complete set")
	flag.Parse()

	ciphertext, err := genCiphertext()
	if err != nil {
		log.Fatalln("failed to generate ciphertext", err)
	}
	log.Printf("bench config: keyLen: %v, ciphertext: %v", *keyLen, bytefmt.ByteSize(uint64(len(ciphertext))))

	cases := genTestCases(*keyLen, *single)
	data := make([][]string, 0, len(cases))
	for i, tc := range cases {
		log.Printf("test %v/%v starting...", i+1, len(cases))

		t := time.Now()
		matches, err := bruteforce.Search(context.Background(), ciphertext,
			bruteforce.WithKeyLength(1, tc.keyLen),
			bruteforce.WithWorkers(tc.workers),
		)
		if err != nil {
			log.Fatalln("search failed", err)
		}
		elapsed := time.Since(t)

		keys := numKeys(len(bruteforce.DefaultKeyAlphabet), tc.keyLen)
		data = append(data, []string{
			strconv.Itoa(tc.workers),
			strconv.Itoa(tc.keyLen),
			strconv.Itoa(keys),
			strconv.Itoa(len(matches)),
			elapsed.Round(time.Millisecond).String(),
			fmt.Sprintf("%.0f", float64(keys)/elapsed.Seconds()),
		})
	}

	header := []string{"workers", "key-len", "keys", "matches", "elapsed", "keys/s"}
	report(header, data)
}

func report(header []string, data [][]string) {
	fmt.Printf("\n\nBENCHMARKS: cpus=%v\n", runtime.NumCPU())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

// genCiphertext enciphers plaintext so that the key "BA" under rotation 0 recovers it.
func genCiphertext() (string, error) {
	b64, err := alphabet.EncodeBase64(alphabet.Base64, []byte(plaintext[:len(plaintext)/3*3]))
	if err != nil {
		return "", err
	}
	return vigenere.Decode(b64, "BA", alphabet.Base64, false)
}

func numKeys(symbols, maxLen int) int {
	total, n := 0, 1
	for l := 1; l <= maxLen; l++ {
		n *= symbols
		total += n
	}
	return total
}

func genTestCases(keyLen int, single bool) []testCase {
	if single {
		return []testCase{{workers: runtime.NumCPU(), keyLen: keyLen}}
	}

	cases := make([]testCase, 0)

	// Various parallelism degrees.
	for w := 1; w <= runtime.NumCPU(); w *= 2 {
		cases = append(cases, testCase{workers: w, keyLen: keyLen})
	}
	return cases
}
