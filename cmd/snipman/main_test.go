package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteDirectClipLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"snipman"},
			want: []string{"snipman"},
		},
		{
			name: "direct clip id first token",
			in:   []string{"snipman", "clip_cq2v7a"},
			want: []string{"snipman", "clips", "show", "clip_cq2v7a"},
		},
		{
			name: "direct clip id after value flag",
			in:   []string{"snipman", "--dir", "./tmp-data", "clip_1"},
			want: []string{"snipman", "--dir", "./tmp-data", "clips", "show", "clip_1"},
		},
		{
			name: "direct clip id after equals flag",
			in:   []string{"snipman", "--format=edn", "clip_1"},
			want: []string{"snipman", "--format=edn", "clips", "show", "clip_1"},
		},
		{
			name: "direct clip id after bool flag",
			in:   []string{"snipman", "--pretty", "clip_1"},
			want: []string{"snipman", "--pretty", "clips", "show", "clip_1"},
		},
		{
			name: "direct clip id after double dash",
			in:   []string{"snipman", "--dir", "./tmp-data", "--", "clip_1"},
			want: []string{"snipman", "--dir", "./tmp-data", "--", "clips", "show", "clip_1"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"snipman", "clip_"},
			want: []string{"snipman", "clip_"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"snipman", "clips", "show", "clip_1"},
			want: []string{"snipman", "clips", "show", "clip_1"},
		},
		{
			name: "category id not rewritten",
			in:   []string{"snipman", "cat_1"},
			want: []string{"snipman", "cat_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rewriteDirectClipLookupArgs(tt.in))
		})
	}
}
