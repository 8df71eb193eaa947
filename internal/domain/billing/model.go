package billing

import "fmt"

// Payment is one entry in a ledger's append-only payment history.
type Payment struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func (p Payment) String() string {
	return fmt.Sprintf("Payment{Amount=$%.2f, Date=%s}", p.Amount, p.Date)
}

// Ledger tracks the outstanding balance and payment history for one patient.
// Exactly one ledger exists per patient ID, opened when the patient is
// created. The balance never goes negative: an overpayment clamps it to
// zero and the excess is not tracked as credit.
type Ledger struct {
	PatientID int       `json:"patient_id"`
	Balance   float64   `json:"balance"`
	Payments  []Payment `json:"payments"`
}

func Open(patientID int) *Ledger {
	return &Ledger{PatientID: patientID, Payments: []Payment{}}
}

// Charge adds amount to the outstanding balance. Non-positive amounts are
// rejected; the original system never issued them and accepting one would
// let a charge masquerade as a payment.
func (l *Ledger) Charge(amount float64) bool {
	if amount <= 0 {
		return false
	}
	l.Balance += amount
	return true
}

// Pay records a payment and reduces the balance, clamping at zero.
func (l *Ledger) Pay(amount float64, date string) {
	l.Payments = append(l.Payments, Payment{Amount: amount, Date: date})
	l.Balance -= amount
	if l.Balance < 0 {
		l.Balance = 0
	}
}

// Status reports the payment state. The "Overpaid" branch is unreachable
// while Pay clamps at zero; it is kept as the defensive fallback the status
// string format calls for.
func (l *Ledger) Status() string {
	switch {
	case l.Balance == 0:
		return "Paid"
	case l.Balance > 0:
		return fmt.Sprintf("Pending: $%.2f", l.Balance)
	default:
		return "Overpaid"
	}
}

func (l *Ledger) String() string {
	return fmt.Sprintf("Billing{PatientID=%d, Amount=$%.2f, Status=%s}",
		l.PatientID, l.Balance, l.Status())
}
