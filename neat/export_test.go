package neat

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	n := NewEmpty(3, 2, newRand(1))
	n.Activation = ActivationTanh
	require.NoError(t, n.AddNodeInGene(2))
	n.AddConnection(5, 5, 0.25)

	var buf bytes.Buffer
	require.NoError(t, n.Export(&buf))

	imported, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, n.Genes, imported.Genes)
	assert.Equal(t, n.Inputs, imported.Inputs)
	assert.Equal(t, n.Outputs, imported.Outputs)
	assert.Equal(t, n.Activation, imported.Activation)
	assert.Len(t, imported.Nodes, len(n.Nodes))

	input := []float64{0.1, 0.4, -0.9}
	for range 3 {
		want, err := n.Evaluate(input)
		require.NoError(t, err)
		got, err := imported.Evaluate(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestExportOmitsRuntimeState(t *testing.T) {
	n := recurrentNetwork()
	_, err := n.Evaluate([]float64{1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, n.Export(&buf))
	assert.Contains(t, buf.String(), `"nodes": 2`)
	assert.NotContains(t, buf.String(), "executed")

	imported, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0.0, imported.Nodes[1].Output)
}

func TestImportValidation(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"too few nodes", `{"inputs": 2, "outputs": [2], "nodes": 2, "genes": []}`},
		{"misplaced output", `{"inputs": 2, "outputs": [3], "nodes": 4, "genes": []}`},
		{"missing node", `{"inputs": 1, "outputs": [1], "nodes": 2, "genes": [{"link": {"src": 0, "dest": 2}}]}`},
		{"duplicate link", `{"inputs": 1, "outputs": [1], "nodes": 2, "genes": [
			{"link": {"src": 0, "dest": 1}, "weight": 1},
			{"link": {"src": 0, "dest": 1}, "weight": 2}]}`},
		{"negative inputs", `{"inputs": -1, "outputs": [], "nodes": 0, "genes": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGenome), err.Error())
		})
	}

	_, err := Import(strings.NewReader(`{"inputs": 1, "outputs": [1], "nodes": 2, "activation": "softmax", "genes": []}`))
	assert.True(t, errors.Is(err, ErrUnknownActivation))

	_, err = Import(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestImportDefaultsActivation(t *testing.T) {
	n, err := Import(strings.NewReader(`{"inputs": 1, "outputs": [1], "nodes": 2, "genes": [{"link": {"src": 0, "dest": 1}, "weight": 2}]}`))
	require.NoError(t, err)
	assert.Equal(t, ActivationReLU, n.Activation)

	out, err := n.Evaluate([]float64{1.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, out)
}
