package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/poiesic/tweetlabel/core"
)

var sentences = []string{
	"The senate vote on the infrastructure bill has been pushed to next week.",
	"Just finished a 10k run along the river, legs are jelly.",
	"Our mayor still hasn't explained where the transit budget went.",
	"New sourdough recipe turned out better than expected.",
	"Early voting starts Monday. Check your polling place before you go.",
	"The cat knocked my coffee onto the keyboard again.",
	"Tariffs on imported steel will hit small manufacturers hardest.",
	"Anyone have recommendations for a good sci-fi series?",
	"Proud to be a first-generation college graduate today.",
	"The governor signed the housing reform package this morning.",
	"Sunset over the bay tonight was unreal.",
	"City council meeting tonight will decide the fate of the park rezoning.",
	"Learning Go has been the most fun I've had programming in years.",
	"Immigration policy debate dominated the town hall.",
	"Rain all weekend, so it's board games and soup.",
	"Campaign finance disclosures show record spending this cycle.",
	"My grandmother's garden is finally blooming.",
	"The supreme court hears arguments on the voting rights case tomorrow.",
	"Concert tickets sold out in four minutes. Unbelievable.",
	"As a nurse I'm exhausted, but I love my patients.",
	"Lawmakers are proposing a cap on prescription drug prices.",
	"Tried the new ramen place downtown. Ten out of ten.",
	"The minimum wage ballot measure is polling within the margin of error.",
	"Spent the afternoon teaching my kid to ride a bike.",
	"Parliament dissolved ahead of the snap election.",
	"Started reading a history of the printing press, surprisingly gripping.",
	"The debate stage was more shouting than policy.",
	"Woke up to snow on the mountains this morning.",
	"Climate legislation stalled again in committee.",
	"Three years sober today.",
}

var (
	seedFileName = flag.String("src", "", "file of seed tweet texts, one per line")
	outFileName  = flag.String("out", "-", "output file for the generated tweets (- for stdout)")
	count        = flag.Int("n", 0, "number of tweets to generate (0 uses every seed line once)")
)

var handles = []string{"civicwatch", "runnerjen", "localnews", "breadhead", "pollworker", "catperson"}

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// seedRecord has the shape the labeler reads.
type seedRecord struct {
	Tweet              core.TweetData `json:"tweet"`
	TextRepresentation string         `json:"textRepresentation"`
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// cycle repeats source until n lines have been produced.
// n <= 0 yields source once.
func cycle(source []string, n int) iter.Seq[string] {
	if n <= 0 {
		return linesFromSlice(source)
	}
	return func(yield func(string) bool) {
		if len(source) == 0 {
			return
		}
		for i := 0; i < n; i++ {
			if !yield(source[i%len(source)]) {
				return
			}
		}
	}
}

// makeTweet builds a synthetic tweet around text.
func makeTweet(i int, text string, base time.Time) seedRecord {
	handle := handles[i%len(handles)]
	posted := base.Add(time.Duration(i) * time.Minute)

	tweet := core.TweetData{
		Index: i,
		ID:    fmt.Sprintf("%d", 1850000000000000000+int64(i)),
		Author: core.Author{
			Name:     handle,
			Handle:   "@" + handle,
			Verified: i%5 == 0,
		},
		Content: core.Content{Text: text},
		Engagement: core.Engagement{
			Replies: fmt.Sprintf("%d", i%17),
			Likes:   fmt.Sprintf("%d", (i*37)%500),
		},
		Timestamp:   posted.Format(time.RFC3339),
		CollectedAt: base.Format(time.RFC3339),
	}

	return seedRecord{
		Tweet:              tweet,
		TextRepresentation: core.RenderText(&tweet),
	}
}

// writeSeeds writes one tweet record per non-empty line of source.
func writeSeeds(w io.Writer, source iter.Seq[string], base time.Time) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for line := range source {
		if line == "" {
			continue
		}
		data, err := json.Marshal(makeTweet(n, line, base))
		if err != nil {
			return n, err
		}
		data = append(data, '\n')
		if _, err := bw.Write(data); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

func main() {
	var source iter.Seq[string]
	if *seedFileName != "" {
		var err error
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		if *count > 0 {
			var lines []string
			for line := range source {
				lines = append(lines, line)
			}
			source = cycle(lines, *count)
		}
	} else {
		source = cycle(sentences, *count)
	}

	out := os.Stdout
	if *outFileName != "-" {
		f, err := os.Create(*outFileName)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		out = f
	}

	n, err := writeSeeds(out, source, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		panic(err)
	}
	slog.Info("seed tweets written", "count", n, "out", *outFileName)
}
