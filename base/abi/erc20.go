package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	ERC20ABI abi.ABI
	// ERC20Bytes32ABI covers legacy tokens (MKR, SAI) returning bytes32 name and symbol
	ERC20Bytes32ABI abi.ABI
)

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc20ABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ERC20ABI = _abi

	_abi, err = abi.JSON(strings.NewReader(erc20Bytes32ABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ERC20Bytes32ABI = _abi
}

var erc20ABIJson = `
[
  {
    "constant": true,
    "inputs": [],
    "name": "name",
    "outputs": [{ "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "constant": true,
    "inputs": [],
    "name": "symbol",
    "outputs": [{ "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "constant": true,
    "inputs": [],
    "name": "decimals",
    "outputs": [{ "name": "", "type": "uint8" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "constant": true,
    "inputs": [{ "name": "owner", "type": "address" }],
    "name": "balanceOf",
    "outputs": [{ "name": "", "type": "uint256" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "constant": true,
    "inputs": [
      { "name": "owner", "type": "address" },
      { "name": "spender", "type": "address" }
    ],
    "name": "allowance",
    "outputs": [{ "name": "", "type": "uint256" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "constant": false,
    "inputs": [
      { "name": "spender", "type": "address" },
      { "name": "amount", "type": "uint256" }
    ],
    "name": "approve",
    "outputs": [{ "name": "", "type": "bool" }],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`

var erc20Bytes32ABIJson = `
[
  {
    "constant": true,
    "inputs": [],
    "name": "name",
    "outputs": [{ "name": "", "type": "bytes32" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "constant": true,
    "inputs": [],
    "name": "symbol",
    "outputs": [{ "name": "", "type": "bytes32" }],
    "stateMutability": "view",
    "type": "function"
  }
]
`
