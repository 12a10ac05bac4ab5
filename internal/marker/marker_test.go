package marker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "single marker",
			src:  `/* __atomic_generated: text-blue-500 */ const btn = 1;`,
			want: []string{"text-blue-500"},
		},
		{
			name: "no space after opening",
			src:  `"/*__atomic_generated:sm:p-1 md:p-1*/"`,
			want: []string{"sm:p-1 md:p-1"},
		},
		{
			name: "several markers",
			src: `/* __atomic_generated:a b */
x()
/* __atomic_generated:c */`,
			want: []string{"a b", "c"},
		},
		{
			name: "stops at first comment end",
			src:  `/* __atomic_generated:a */ b */`,
			want: []string{"a"},
		},
		{
			name: "other comments ignored",
			src:  `/* eslint-disable */ // __atomic_generated:nope`,
			want: nil,
		},
		{
			name: "other tag ignored",
			src:  `/* __custom:a */`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Find(Pattern, tt.src))
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	src := "package ui\n\n" + Format(Tag, "p-1 md:p-2") + "\n"
	require.Equal(t, []string{"p-1 md:p-2"}, Find(Pattern, src))

	custom := Compile("__mine")
	require.Equal(t, []string{"x"}, Find(custom, Format("__mine", "x")))
	require.Empty(t, Find(Pattern, Format("__mine", "x")))
}

func TestSet(t *testing.T) {
	s := NewSet()
	assert.Equal(t, 2, s.Add("b", "a"))
	assert.Equal(t, 1, s.Add("a", "c", "b"))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"b", "a", "c"}, s.Values())
	assert.Equal(t, "b\na\nc", s.String())
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", OutputDir)

	s := NewSet()
	s.Add("p-1 md:p-2", "text-blue-500")

	wrote, err := Write(s, dir, OutputFile)
	require.NoError(t, err)
	require.True(t, wrote)

	content, err := os.ReadFile(filepath.Join(dir, OutputFile))
	require.NoError(t, err)
	assert.Equal(t, "p-1 md:p-2\ntext-blue-500", string(content))
}

func TestWriteEmptySetWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), OutputDir)

	wrote, err := Write(NewSet(), dir, OutputFile)
	require.NoError(t, err)
	assert.False(t, wrote)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPathDefaults(t *testing.T) {
	assert.Equal(t, filepath.Join(OutputDir, OutputFile), Path("", ""))
	assert.Equal(t, filepath.Join("out", "list.txt"), Path("out", "list.txt"))
}
