package model

// Regressor is a supervised model predicting a continuous target.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
}

// FeatureImportancer is implemented by tree ensembles that can attribute
// predictive power to input features. Importances sum to 1.
type FeatureImportancer interface {
	FeatureImportances() []float64
}
