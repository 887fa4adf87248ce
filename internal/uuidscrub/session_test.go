package uuidscrub

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

func uniqueOpts() Options {
	return Options{ScrubHyphenated: true, ScrubHyphenless: true, UseUniquePlaceholders: true}
}

func TestScrub_UniquePlaceholder(t *testing.T) {
	res, err := Scrub("UUID: "+testUUID, uniqueOpts(), nil)
	require.NoError(t, err)

	assert.Equal(t, "UUID: PLACEHOLDER_1", res.Content)
	assert.True(t, res.Scrubbed)
	assert.Equal(t, 1, res.Replacements)
	require.NotNil(t, res.Session)
	assert.Equal(t, 2, res.Session.Counter)
	assert.Equal(t, map[string]string{"PLACEHOLDER_1": testUUID}, res.Session.Mapping.ToMap())
}

func TestScrub_SharedSessionReusesTokens(t *testing.T) {
	other := "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	session := NewSession()

	first, err := Scrub("a="+testUUID, uniqueOpts(), session)
	require.NoError(t, err)
	second, err := Scrub("b="+other+" c="+testUUID, uniqueOpts(), session)
	require.NoError(t, err)

	assert.Equal(t, "a=PLACEHOLDER_1", first.Content)
	assert.Equal(t, "b=PLACEHOLDER_2 c=PLACEHOLDER_1", second.Content)
	assert.Equal(t, 3, session.Counter)
	assert.Equal(t, []string{"PLACEHOLDER_1", "PLACEHOLDER_2"}, session.Mapping.Tokens())
}

func TestScrub_HyphenlessUnique(t *testing.T) {
	res, err := Scrub("k="+testHyphenless+"\n", uniqueOpts(), nil)
	require.NoError(t, err)
	assert.Equal(t, "k=PLACEHOLDER_1\n", res.Content)
}

func TestScrub_FixedReplacement(t *testing.T) {
	replacement := "11111111-1111-1111-1111-111111111111"
	other := "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	opts := Options{ScrubHyphenated: true, ScrubHyphenless: true, ReplacementUUID: replacement}

	res, err := Scrub(testUUID+" "+testUUID+" "+other+" "+testHyphenless, opts, nil)
	require.NoError(t, err)

	hyphenless := strings.ReplaceAll(replacement, "-", "")
	assert.Equal(t, replacement+" "+replacement+" "+replacement+" "+hyphenless, res.Content)
	assert.Equal(t, 4, res.Replacements)
	assert.Equal(t, 1, res.Session.Counter, "fixed mode never advances the counter")
	assert.Equal(t, map[string]string{
		replacement: testUUID,
		hyphenless:  testHyphenless,
	}, res.Session.Mapping.ToMap())
}

func TestScrub_DefaultReplacement(t *testing.T) {
	res, err := Scrub("id: "+testUUID, Options{ScrubHyphenated: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "id: "+prepdir.DefaultReplacementUUID, res.Content)
}

func TestScrub_InvalidReplacement(t *testing.T) {
	for _, bad := range []string{"not-a-uuid", testHyphenless, "{" + testUUID + "}"} {
		_, err := Scrub("x", Options{ScrubHyphenated: true, ReplacementUUID: bad}, nil)
		require.ErrorIs(t, err, prepdir.ErrInvalidInput, bad)
	}
}

func TestScrub_NoMatches(t *testing.T) {
	session := NewSession()
	res, err := Scrub("nothing to see\r\n", uniqueOpts(), session)
	require.NoError(t, err)
	assert.False(t, res.Scrubbed)
	assert.Equal(t, "nothing to see\r\n", res.Content)
	assert.Equal(t, 1, session.Counter)
	assert.Zero(t, session.Mapping.Len())
}

func TestScrub_PreservesSurroundingBytes(t *testing.T) {
	content := "\tfirst: " + testUUID + "\r\n  second:\t" + testUUID + "  \r\n"
	res, err := Scrub(content, uniqueOpts(), nil)
	require.NoError(t, err)
	assert.Equal(t, "\tfirst: PLACEHOLDER_1\r\n  second:\tPLACEHOLDER_1  \r\n", res.Content)
}

func TestScrub_DisabledDetectors(t *testing.T) {
	res, err := Scrub(testUUID+" "+testHyphenless, Options{UseUniquePlaceholders: true}, nil)
	require.NoError(t, err)
	assert.False(t, res.Scrubbed)
	assert.Equal(t, testUUID+" "+testHyphenless, res.Content)
}

func TestScrub_SkipsTokensAlreadyInMapping(t *testing.T) {
	m := NewMapping()
	require.NoError(t, m.Add("PLACEHOLDER_1", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	session := ResumeSession(m, 1)

	res, err := Scrub(testUUID, uniqueOpts(), session)
	require.NoError(t, err)
	assert.Equal(t, "PLACEHOLDER_2", res.Content)
	assert.Equal(t, 3, session.Counter)
}

func TestScrub_SkipsTokensPresentInContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"literal placeholder", "PLACEHOLDER_1 and " + testUUID, "PLACEHOLDER_1 and PLACEHOLDER_2"},
		{"longer literal placeholder", "PLACEHOLDER_12 and " + testUUID, "PLACEHOLDER_12 and PLACEHOLDER_2"},
		{"several literals", "PLACEHOLDER_1 PLACEHOLDER_2 " + testUUID, "PLACEHOLDER_1 PLACEHOLDER_2 PLACEHOLDER_3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Scrub(tt.content, uniqueOpts(), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Content)

			restored, err := Restore(res.Content, res.Session.Mapping, res.Scrubbed)
			require.NoError(t, err)
			assert.Equal(t, tt.content, restored)
		})
	}
}

func TestScrub_LargeMapping(t *testing.T) {
	session := NewSession()
	var lines []string
	for i := 0; i < 200; i++ {
		lines = append(lines, uuid.NewString())
	}
	content := strings.Join(lines, "\n")

	res, err := Scrub(content, uniqueOpts(), session)
	require.NoError(t, err)
	assert.Equal(t, 200, session.Mapping.Len())
	assert.Equal(t, 201, session.Counter)
	assert.True(t, strings.HasSuffix(res.Content, "PLACEHOLDER_200"))
}

func TestScrub_VerboseLogsReplacements(t *testing.T) {
	logger := &recordingLogger{}
	opts := uniqueOpts()
	opts.Verbose = true
	opts.Logger = logger

	_, err := Scrub(testUUID, opts, nil)
	require.NoError(t, err)
	require.Len(t, logger.verbose, 1)
	assert.Contains(t, logger.verbose[0], "PLACEHOLDER_1")
}

func TestResumeSession_Normalizes(t *testing.T) {
	s := ResumeSession(nil, 0)
	assert.NotNil(t, s.Mapping)
	assert.Equal(t, 1, s.Counter)
}

type recordingLogger struct {
	verbose []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}
