package neat

import (
	"fmt"
	"math"
)

// ActivationType defines the type for activation functions.
type ActivationType func(x float64) float64

// Names of the registered activation functions.
const (
	ActivationReLU         = "relu"
	ActivationSteepSigmoid = "steep_sigmoid"
	ActivationSigmoid      = "sigmoid"
	ActivationTanh         = "tanh"
	ActivationIdentity     = "identity"
)

// ActivationFunctions maps function names to the actual activation functions.
// This allows configuration to specify activations by name.
var ActivationFunctions = map[string]ActivationType{
	ActivationReLU:         ReLU,
	ActivationSteepSigmoid: SteepSigmoid,
	ActivationSigmoid:      Sigmoid,
	ActivationTanh:         Tanh,
	ActivationIdentity:     Identity,
}

// GetActivation retrieves an activation function by name. The empty name
// resolves to ReLU.
func GetActivation(name string) (ActivationType, error) {
	if name == "" {
		return ReLU, nil
	}
	if fn, ok := ActivationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownActivation, name)
}

// ReLU (Rectified Linear Unit) activation function.
func ReLU(x float64) float64 {
	return math.Max(0, x)
}

// SteepSigmoid is the logistic function with slope 4.9, as used by the
// original NEAT experiments.
func SteepSigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-4.9*x))
}

// Sigmoid activation function.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Tanh activation function.
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// Identity activation function (linear).
func Identity(x float64) float64 {
	return x
}
